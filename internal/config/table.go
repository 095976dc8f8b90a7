package config

// Kind selects how a raw string value is coerced after merging.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
)

// Entry declares one setting: its default and where to find it.
type Entry struct {
	Key     string
	Default string
	Env     string
	Flag    string
	Kind    Kind
}

const (
	KeyConfigFile         = "config_file"
	KeyDebug              = "debug"
	KeyDockerLaunched     = "docker_launched"
	KeyLogLevel           = "log_level"
	KeySenzingDir         = "senzing_dir"
	KeySenzingPackage     = "senzing_package"
	KeySenzingSourceDir   = "senzing_source_dir"
	KeySleepTimeInSeconds = "sleep_time_in_seconds"
	KeySubcommand         = "subcommand"
)

// Entries is the static configuration table.
var Entries = []Entry{
	{Key: KeyConfigFile, Env: "SENZING_CONFIG_FILE", Flag: "config-file"},
	{Key: KeyDebug, Default: "false", Env: "SENZING_DEBUG", Flag: "debug", Kind: KindBool},
	{Key: KeyDockerLaunched, Default: "false", Env: "SENZING_DOCKER_LAUNCHED", Flag: "docker-launched", Kind: KindBool},
	{Key: KeyLogLevel, Default: "info", Env: "SENZING_LOG_LEVEL", Flag: "log-level"},
	{Key: KeySenzingDir, Default: "/opt/senzing", Env: "SENZING_DIR", Flag: "senzing-dir"},
	{Key: KeySenzingPackage, Default: "downloads/Senzing_API.tgz", Env: "SENZING_PACKAGE", Flag: "senzing-package"},
	{Key: KeySenzingSourceDir, Env: "SENZING_SOURCE_DIR", Flag: "senzing-source-dir"},
	{Key: KeySleepTimeInSeconds, Default: "0", Env: "SENZING_SLEEP_TIME_IN_SECONDS", Flag: "sleep-time-in-seconds", Kind: KindInt},
	{Key: KeySubcommand, Env: "SENZING_SUBCOMMAND"},
}

// Lookup returns the table entry for key.
func Lookup(key string) (Entry, bool) {
	for _, e := range Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

func envFor(key string) string {
	e, _ := Lookup(key)
	return e.Env
}
