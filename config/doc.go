// Package config loads media settings from CUE files.
//
// A configuration file is checked against an embedded schema; every field is
// optional and omitted fields take the schema defaults:
//
//	images: searchPaths: ["/opt/app/media", "/usr/share/app/media"]
//	icons: searchPaths: ["/usr/share/icons/app"]
//	animation: {
//	    framesPerSecond: 24
//	    decay: initial: 12
//	}
//	logging: level: "debug"
//
// Load it and install it process-wide:
//
//	cfg, err := config.NewLoader(billy.NewLocal()).Load(ctx, "/etc/app/media.cue")
//	if err != nil {
//	    return err
//	}
//	cfg.Install()
//
// Errors carry the github.com/jmgilman/go/errors CUE codes:
// CodeCUELoadFailed, CodeCUEBuildFailed, CodeCUEValidationFailed and
// CodeCUEDecodeFailed.
package config
