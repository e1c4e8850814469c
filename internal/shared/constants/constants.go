package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP headers
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"

	// Context keys set by the auth middleware
	ContextKeyAccountID = "account_id"
	ContextKeyTokenID   = "token_id"
	ContextKeyOriginID  = "origin_id"
	ContextKeyRole      = "role"

	// Database table names
	TableAccounts        = "account"
	TableSessions        = "account_session"
	TableUsers           = "users"
	TableProducts        = "product"
	TableCategories      = "product_category"
	TableBeverages       = "beverage"
	TableBeveragePricing = "beverage_pricing"
)
