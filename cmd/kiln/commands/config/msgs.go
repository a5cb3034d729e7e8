package config

// Message constants
const (
	MsgShort   = "Show or create the kiln configuration file"
	MsgLong    = "Print the effective configuration (defaults, config file, KILN_* environment and flags merged) as TOML.\n\nWith --write, create a configuration file with every default commented out. An existing file is left untouched."
	MsgExample = `  kiln config                # Effective configuration
  kiln config --defaults     # Commented defaults
  kiln config --write        # Create the user config file`
	MsgFlagWrite    = "Write a commented defaults file to the user config path"
	MsgFlagDefaults = "Print the commented defaults instead of the effective configuration"
	MsgWritten      = "Wrote %s\n"
	MsgExists       = "%s already exists, left untouched\n"
)
