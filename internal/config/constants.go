package config

const (
	// EnvSI toggles conversion to SI units by default.
	EnvSI = "SENSOR_ROUND_SI"
	// EnvDefaultPrecision is the precision applied to units without a policy.
	EnvDefaultPrecision = "SENSOR_ROUND_DEFAULT_PRECISION"
	// EnvDateTimeLevel is the timestamp rounding level (0 day .. 4 millisecond).
	EnvDateTimeLevel = "SENSOR_ROUND_DATETIME_LEVEL"
	// EnvPolicyFile points at a YAML file with extra or replacement unit policies.
	EnvPolicyFile = "SENSOR_ROUND_POLICY_FILE"
	// EnvWorkers bounds batch and check parallelism.
	EnvWorkers = "SENSOR_ROUND_WORKERS"
	// EnvLogLevel is the logrus level name.
	EnvLogLevel = "LOG_LEVEL"

	// DefaultEnvFile is loaded when no --env flag is given.
	DefaultEnvFile = ".env"
	// DefaultLogLevel applies when LOG_LEVEL is unset.
	DefaultLogLevel = "info"
	// DefaultWorkers applies when SENSOR_ROUND_WORKERS is unset.
	DefaultWorkers = 8
	// FixturesDir is where check looks for fixture files by default.
	FixturesDir = "fixtures"
)
