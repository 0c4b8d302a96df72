package config

import (
	"fmt"
	"platodropbox/internal/core/domain/models"
	"strconv"
)

// Args are the positional arguments the host passes to the fetcher.
type Args struct {
	LibraryPath string
	SavePath    string
	WifiEnabled bool
	Online      bool
}

var argNames = []string{"library path", "save path", "wifi status", "online status"}

// ParseArgs parses <library-path> <save-path> <wifi> <online>. Extra arguments are ignored.
func ParseArgs(args []string) (Args, error) {
	if len(args) < len(argNames) {
		return Args{}, fmt.Errorf("%w: missing argument: %s", models.ErrConfig, argNames[len(args)])
	}

	var a Args
	a.LibraryPath = args[0]
	a.SavePath = args[1]

	for i, dst := range []*bool{&a.WifiEnabled, &a.Online} {
		idx := i + 2
		v, err := strconv.ParseBool(args[idx])
		if err != nil {
			return Args{}, fmt.Errorf("%w: invalid argument %s %q: %w", models.ErrConfig, argNames[idx], args[idx], err)
		}
		*dst = v
	}

	if a.LibraryPath == "" {
		return Args{}, fmt.Errorf("%w: missing argument: library path", models.ErrConfig)
	}
	if a.SavePath == "" {
		return Args{}, fmt.Errorf("%w: missing argument: save path", models.ErrConfig)
	}
	return a, nil
}

// Request combines the parsed arguments with the credential.
func (a Args) Request(cred models.Credential) models.SyncRequest {
	return models.SyncRequest{
		LibraryPath: a.LibraryPath,
		SavePath:    a.SavePath,
		WifiEnabled: a.WifiEnabled,
		Online:      a.Online,
		Credential:  cred,
	}
}
