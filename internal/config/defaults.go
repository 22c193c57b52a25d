// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Top-level defaults keys shared by every configuration document.
const (
	keyGitServer    = "git-server"
	keyDockerImage  = "docker-image"
	keyRepoURL      = "repo-url"
	keyRepoBranch   = "repo-branch"
	keyRepoManifest = "repo-manifest"
	keyExitPhrase   = "exit-phrase"
)

// Builtin fallback values for the defaults.
const (
	defaultGitServer   = "https://github.com"
	defaultDockerImage = "docker.io/trustworthysystems/camkes-riscv"
	defaultRepoURL     = "https://storage.googleapis.com/git-repo-downloads/repo"
	defaultExitPhrase  = "All is well in the universe"
)

// Defaults holds the global scalar configuration shared by all projects.
// Values come from the builtin document, override documents, and S4_*
// environment variables, in that order of increasing precedence.
type Defaults struct {
	// GitServer is the base URL manifests are fetched from.
	GitServer string
	// DockerImage is the container image holding the build tools.
	DockerImage string
	// RepoURL is where the repo helper script is downloaded from when it is
	// not already installed.
	RepoURL string
	// RepoBranch is the manifest branch to check out, or empty for the
	// repository default.
	RepoBranch string
	// RepoManifest is the manifest file to check out, or empty for the
	// repository default.
	RepoManifest string
	// ExitPhrase marks a successful hardware run in console output.
	ExitPhrase string
}

// GitRepoURL returns the clone URL of a repository on the configured server.
func (d Defaults) GitRepoURL(repo Repository) string {
	return d.GitServer + "/" + repo.String() + ".git"
}

// defaultsViper seeds a viper instance with the builtin fallbacks and binds
// the S4_* environment overrides (S4_DOCKER_IMAGE, S4_REPO_BRANCH, ...).
func defaultsViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyGitServer, defaultGitServer)
	v.SetDefault(keyDockerImage, defaultDockerImage)
	v.SetDefault(keyRepoURL, defaultRepoURL)
	v.SetDefault(keyRepoBranch, "")
	v.SetDefault(keyRepoManifest, "")
	v.SetDefault(keyExitPhrase, defaultExitPhrase)
	v.SetEnvPrefix("s4")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// mergeDefaults folds the top-level defaults scalars of a raw document into
// the viper instance; later documents override earlier ones.
func mergeDefaults(v *viper.Viper, raw map[string]any) error {
	scalars := make(map[string]any)
	for _, key := range []string{
		keyGitServer, keyDockerImage, keyRepoURL,
		keyRepoBranch, keyRepoManifest, keyExitPhrase,
	} {
		if value, ok := raw[key]; ok {
			scalars[key] = value
		}
	}
	return v.MergeConfigMap(scalars)
}

// defaultsFromViper snapshots the merged defaults into an immutable value.
func defaultsFromViper(v *viper.Viper) Defaults {
	return Defaults{
		GitServer:    v.GetString(keyGitServer),
		DockerImage:  v.GetString(keyDockerImage),
		RepoURL:      v.GetString(keyRepoURL),
		RepoBranch:   v.GetString(keyRepoBranch),
		RepoManifest: v.GetString(keyRepoManifest),
		ExitPhrase:   v.GetString(keyExitPhrase),
	}
}
