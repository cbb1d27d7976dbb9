package config

import "github.com/midaytech/brainloop/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errLoadEnv = &apperr.Error{
		Message: "loading env file %s failed",
	}

	errInvalidBaseURL = &apperr.Error{
		Message: "api base URL must be an absolute http or https URL, got %q",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "api timeout must be between %v and %v",
	}

	errInvalidBatchSize = &apperr.Error{
		Message: "loop batch size must be between %d and %d",
	}

	errInvalidAutoCloseDelay = &apperr.Error{
		Message: "loop auto close delay must be between %v and %v",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q (must be debug, info, warn or error)",
	}

	errInvalidToday = &apperr.Error{
		Message: "could not understand the date %q",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "please provide a valid time period",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the start time must be earlier than the end time",
	}

	errInvalidStartDate = &apperr.Error{
		Message: "please provide a valid start date",
	}
)
