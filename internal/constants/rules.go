package constants

import (
	"strconv"

	"github.com/kerimovok/go-pkg-utils/config"
	"github.com/kerimovok/go-pkg-utils/validator"
)

var EnvValidationRules = []validator.ValidationRule{
	// Server validation
	{
		Variable: "PORT",
		Default:  "8000",
		Rule:     config.IsValidPort,
		Message:  "server port is required and must be a valid port number",
	},
	{
		Variable: "GO_ENV",
		Default:  "development",
		Rule:     func(v string) bool { return v == "development" || v == "production" },
		Message:  "GO_ENV must be either 'development' or 'production'",
	},

	// Database validation
	{
		Variable: "DB_HOST",
		Rule:     func(v string) bool { return v != "" },
		Message:  "database host is required",
	},
	{
		Variable: "DB_PORT",
		Default:  "5432",
		Rule:     config.IsValidPort,
		Message:  "database port is required and must be a valid port number",
	},
	{
		Variable: "DB_USER",
		Rule:     func(v string) bool { return v != "" },
		Message:  "database user is required",
	},
	{
		Variable: "DB_NAME",
		Default:  "loader",
		Rule:     func(v string) bool { return v != "" },
		Message:  "database name is required",
	},
	{
		Variable: "DB_POOL_MIN_CONNS",
		Default:  "1",
		Rule:     isPositiveInt,
		Message:  "minimum pool size must be a positive number",
	},
	{
		Variable: "DB_POOL_MAX_CONNS",
		Default:  "10",
		Rule:     isPositiveInt,
		Message:  "maximum pool size must be a positive number",
	},
}

func isPositiveInt(v string) bool {
	n, err := strconv.Atoi(v)
	return err == nil && n > 0
}
