package constants

// AppName is the name of the binary, used in user-facing hints.
const AppName = "lara"

// Compose-related defaults
const (
	// DefaultComposeFile is the compose file used when none is configured.
	DefaultComposeFile = "docker-compose.yml"

	// DefaultDockerBinary is the container CLI that provides the compose plugin.
	DefaultDockerBinary = "docker"

	// DefaultService is the primary application service inside the compose project.
	DefaultService = "laravel.test"

	// DefaultUser is the in-container user that framework commands run as.
	DefaultUser = "sail"

	// RootUser is the identity used by the root shell.
	RootUser = "root"

	// DefaultServePort is the port the development server binds inside the container.
	DefaultServePort = 8000
)

// DefaultServices are the services that get a dedicated logs-<service> command.
var DefaultServices = []string{"laravel.test", "mysql", "redis"}

// Project file constants
const (
	// EnvFile is the working environment file read by compose.
	EnvFile = ".env"

	// EnvTemplateFile is the template copied to EnvFile by bootstrap.
	EnvTemplateFile = ".env.example"

	// LocalConfigFile is the per-project configuration file name.
	LocalConfigFile = ".lara.yaml"

	// GlobalConfigDir is the directory under the user config dir holding the global config.
	GlobalConfigDir = "lara"

	// GlobalConfigFile is the global configuration file name.
	GlobalConfigFile = "config.yaml"
)

// Environment variable names
const (
	EnvComposeFile = "LARA_COMPOSE_FILE"
	EnvUser        = "LARA_USER"
	EnvService     = "LARA_SERVICE"
	EnvDocker      = "LARA_DOCKER"
	EnvDebug       = "LARA_DEBUG"
	EnvLogLevel    = "LARA_LOG_LEVEL"
)

// Exit codes
const (
	// ExitUnknownCommand is returned when a command name is not registered.
	ExitUnknownCommand = 2
)
