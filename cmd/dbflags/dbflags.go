// Package dbflags provides the database connection flags shared by every
// seshat command, together with their environment fallbacks. Flag values win
// over environment values; the environment variables SESHAT_DB_URL and
// SESHAT_DB_NAME are read through viper.
package dbflags

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/viper"

	"github.com/stokaro/seshat/catalog"
)

const (
	DBURLFlag  = "db-url"
	DBNameFlag = "db-name"
)

// DefaultDBURL is used when neither the flag nor SESHAT_DB_URL is set.
const DefaultDBURL = "mongodb://localhost:27017"

// New returns a fresh flag map for one command. Each command gets its own map
// so flag registration does not leak between subcommands.
func New() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		DBURLFlag: &cobraflags.StringFlag{
			Name:  DBURLFlag,
			Value: "",
			Usage: "MongoDB connection URL (env: SESHAT_DB_URL)",
		},
		DBNameFlag: &cobraflags.StringFlag{
			Name:  DBNameFlag,
			Value: "",
			Usage: "Target database name (env: SESHAT_DB_NAME, default: " + catalog.DatabaseName + ")",
		},
	}
}

// ResolveURL returns the connection URL: flag, then environment, then default.
func ResolveURL(flags map[string]cobraflags.Flag) string {
	if v := flags[DBURLFlag].GetString(); v != "" {
		return v
	}
	if v := viper.GetString(DBURLFlag); v != "" {
		return v
	}
	return DefaultDBURL
}

// ResolveName returns the database name: flag, then environment, then the
// baked-in catalog default.
func ResolveName(flags map[string]cobraflags.Flag) string {
	if v := flags[DBNameFlag].GetString(); v != "" {
		return v
	}
	if v := viper.GetString(DBNameFlag); v != "" {
		return v
	}
	return catalog.DatabaseName
}
