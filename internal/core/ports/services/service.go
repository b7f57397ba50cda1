package services

// ServiceContainer holds every service facade the handlers depend on.
type ServiceContainer struct {
	Allocation AllocationSvcFacade
	Account    FSAAccountSvcFacade
	Employee   EmployeeSvcFacade
	Reporting  ReportingSvcFacade
	Auth       AuthSvcFacade
}
