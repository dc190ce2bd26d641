package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// ApplicationName is the binary and configuration namespace name.
	ApplicationName = "concat"
	// ConfigFileName is the local configuration file looked up in the working directory.
	ConfigFileName = ".concat.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".concat"
	// GlobalConfigFileName is the file name of the global configuration.
	GlobalConfigFileName = "config.yaml"
)

const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal errors at the process boundary.
	ApplicationExecutionFailedMessage = "concat failed"
)
