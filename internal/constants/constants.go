package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultConnectTimeout bounds establishing the TCP connection.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultReadTimeout bounds the full request/response exchange.
	DefaultReadTimeout = 120 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Connection pooling.
const (
	// PoolMaxIdlePerHost caps idle connections kept per API host.
	PoolMaxIdlePerHost = 16
)

// API defaults.
const (
	// DefaultAPIVersion is used when Config.APIVersion is zero.
	DefaultAPIVersion = 1

	// DefaultAppVersion is used when Config.AppVersion is empty.
	DefaultAppVersion = "1.0.0"

	// DefaultPkgName is used when Config.PkgName is empty.
	DefaultPkgName = "package"

	// DefaultPkgVersion is used when Config.PkgVersion is empty.
	DefaultPkgVersion = "1.0.0"
)

// Cache defaults.
const (
	// DefaultCacheSize is the default maximum number of cached entries.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default time-to-live for cached entries.
	DefaultCacheTTL = 5 * time.Minute
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
