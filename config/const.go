package config

import "strings"

// AppVersion is the version of the application.
var AppVersion = "dev" // Set with -ldflags "-X github.com/dixieflatline76/HappyBadge/config.AppVersion=..."

// AppName is the name of the application.
const AppName = "HappyBadge"

// ConfigSubDir is the directory under the user's home holding the config file.
var ConfigSubDir = "." + strings.ToLower(AppName)

// ConfigFileName is the default config file name.
const ConfigFileName = "config.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HAPPYBADGE_"
