package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// ErrDevBuild is returned when the running binary was built from source.
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrUnsupported   = errors.New("no release build for this platform")
)

// Stage is one step of an update, reported in order.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the version to install. An empty TargetVersion
// means the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress reports one stage of an update.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update installs a release over the running binary. The checksum list is
// fetched before the archive, so a release missing this platform fails
// without downloading anything large.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if !semver.IsValid(canonical(input.CurrentVersion)) {
		return ErrDevBuild
	}
	report := func(s Stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: s, Message: fmt.Sprintf(format, args...)})
		}
	}

	asset, err := AssetName(c.goos, c.goarch)
	if err != nil {
		return err
	}

	tag := input.TargetVersion
	if tag == "" {
		report(StageResolve, "Looking up the latest release...")
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	sums, err := c.get(ctx, c.downloadURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := checksumFor(sums, asset)
	if !ok {
		return fmt.Errorf("release %s has no %s", tag, asset)
	}

	report(StageDownload, "Downloading %s %s...", binaryName, tag)
	archive, err := c.get(ctx, c.downloadURL(tag, asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying %s...", asset)
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}
	binary, err := unpack(archive)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", asset, err)
	}

	report(StageInstall, "Installing...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, binary); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	report(StageDone, "%s is now at %s", binaryName, tag)
	return nil
}

// AssetName is the release archive built for a platform.
func AssetName(goos, goarch string) (string, error) {
	switch goos {
	case "linux", "darwin":
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupported, goos, goarch)
	}
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupported, goos, goarch)
	}
	return fmt.Sprintf("%s_%s_%s.tar.gz", binaryName, goos, goarch), nil
}

func (c *Checker) downloadURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

// checksumFor finds asset in a sha256sum listing. A leading '*' on the
// name marks binary mode and is ignored.
func checksumFor(listing []byte, asset string) (string, bool) {
	for line := range strings.Lines(string(listing)) {
		fields := strings.Fields(line)
		if len(fields) == 2 && strings.TrimPrefix(fields[1], "*") == asset {
			return strings.ToLower(fields[0]), true
		}
	}
	return "", false
}

func verifyChecksum(data []byte, want string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

// unpack returns the periodica binary from a release tarball.
func unpack(archive []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no %s binary in archive", binaryName)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == binaryName {
			return io.ReadAll(tr)
		}
	}
}

// replaceExecutable writes binary next to target and renames it over
// target, keeping target's permissions.
func replaceExecutable(target string, binary []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(binary); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
