package transport

import (
	"fmt"
	"runtime"

	"github.com/omenfeed-io/omen/internal/constants"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// BuildIdentity renders the client identity string sent with every request
// (the app_id query parameter and the X-Omen-User-Agent header):
//
//	{app_name}+{app_version} ({platform}) {pkg_name}/{pkg_version}
//
// AppName must be set; everything else has a default. The result is
// deterministic for a given config.
func BuildIdentity(config *omen.Config) (string, error) {
	if config.AppName == "" {
		return "", omen.ErrAppNameRequired
	}

	appVersion := config.AppVersion
	if appVersion == "" {
		appVersion = constants.DefaultAppVersion
	}

	platformID := config.PlatformID
	if platformID == "" {
		platformID = hostPlatform()
	}

	pkgName := config.PkgName
	if pkgName == "" {
		pkgName = constants.DefaultPkgName
	}

	pkgVersion := config.PkgVersion
	if pkgVersion == "" {
		pkgVersion = constants.DefaultPkgVersion
	}

	return fmt.Sprintf("%s+%s (%s) %s/%s",
		config.AppName, appVersion, platformID, pkgName, pkgVersion), nil
}

// hostPlatform describes the running platform, the closest Go analogue of a
// full OS platform string.
func hostPlatform() string {
	return fmt.Sprintf("%s-%s %s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}
