package exec

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/google/uuid"
)

// Sandbox runs one snippet of candidate code inside a throwaway container:
// no network, read-only rootfs, tmpfs workspace, memory and CPU caps.
type Sandbox struct {
	cli    *client.Client
	image  string
	limits SandboxLimits
}

func NewSandbox(image string, limits SandboxLimits) (*Sandbox, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &Sandbox{cli: cli, image: image, limits: limits}, nil
}

func (s *Sandbox) Run(ctx context.Context, fileName string, code []byte, cmd []string,
	onStdout func([]byte), onStderr func([]byte)) (exit int, timedOut bool, err error) {

	ctx, cancel := context.WithTimeout(ctx, s.limits.WallTime)
	defer cancel()

	hostCfg := sandboxHostConfig(s.limits)
	conf := sandboxContainerConfig(s.image)

	create, err := s.cli.ContainerCreate(ctx, conf, hostCfg, nil, nil, "sandbox-"+uuid.New().String())
	if err != nil {
		return 0, false, err
	}
	cid := create.ID
	defer func() {
		_ = s.cli.ContainerRemove(context.Background(), cid, types.ContainerRemoveOptions{Force: true})
	}()

	if err := s.cli.ContainerStart(ctx, cid, types.ContainerStartOptions{}); err != nil {
		return 0, false, err
	}

	// Tmpfs mounts only exist on a running container, so the copy happens
	// after start.
	if err := s.copyFile(ctx, cid, "/workspace/"+fileName, code, 0600); err != nil {
		_ = s.cli.ContainerKill(context.Background(), cid, "SIGKILL")
		return 0, false, err
	}

	execResp, err := s.cli.ContainerExecCreate(ctx, cid, types.ExecConfig{
		Cmd:          cmd,
		WorkingDir:   "/workspace",
		AttachStdout: true,
		AttachStderr: true,
		Tty:          false,
	})
	if err != nil {
		_ = s.cli.ContainerKill(context.Background(), cid, "SIGKILL")
		return 0, false, err
	}

	attach, err := s.cli.ContainerExecAttach(ctx, execResp.ID, types.ExecStartCheck{Tty: false})
	if err != nil {
		_ = s.cli.ContainerKill(context.Background(), cid, "SIGKILL")
		return 0, false, err
	}
	defer attach.Close()

	done := make(chan error, 1)
	go func() {
		_, copyErr := stdcopy.StdCopy(writerFunc(onStdout), writerFunc(onStderr), attach.Reader)
		done <- copyErr
	}()

	select {
	case copyErr := <-done:
		if copyErr != nil && !errors.Is(copyErr, context.DeadlineExceeded) {
			return 0, false, copyErr
		}
	case <-ctx.Done():
		_ = s.cli.ContainerKill(context.Background(), cid, "SIGKILL")
		return 0, true, nil
	}

	ir, err := s.cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			_ = s.cli.ContainerKill(context.Background(), cid, "SIGKILL")
			return 0, true, nil
		}
		return 0, false, err
	}
	return ir.ExitCode, false, nil
}

// sandboxHostConfig locks the container down: no network, read-only rootfs,
// tmpfs mounts for /tmp and /workspace. The daemon rejects archive copies
// into a read-only rootfs, so the workspace must be a tmpfs.
func sandboxHostConfig(limits SandboxLimits) *container.HostConfig {
	return &container.HostConfig{
		NetworkMode:    "none",
		ReadonlyRootfs: true,
		Mounts: []mount.Mount{
			{Type: mount.TypeTmpfs, Target: "/tmp"},
			{Type: mount.TypeTmpfs, Target: "/workspace"},
		},
		Resources: container.Resources{
			Memory:   limits.MemoryB,
			NanoCPUs: limits.NanoCPUs,
		},
		SecurityOpt: []string{"no-new-privileges"},
	}
}

// sandboxContainerConfig keeps the container idle; the actual command runs
// through exec once the source file has landed in the tmpfs workspace.
func sandboxContainerConfig(image string) *container.Config {
	return &container.Config{
		Image:      image,
		Cmd:        []string{"sh", "-c", "sleep infinity"},
		Tty:        false,
		WorkingDir: "/workspace",
	}
}

func (s *Sandbox) copyFile(ctx context.Context, cid, absPath string, content []byte, mode int64) error {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{
		Name: absPath[1:],
		Mode: mode,
		Size: int64(len(content)),
	}); err != nil {
		return err
	}
	if _, err := tw.Write(content); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return s.cli.CopyToContainer(ctx, cid, "/", &buf, types.CopyToContainerOptions{})
}

type writerFunc func([]byte)

func (f writerFunc) Write(p []byte) (int, error) {
	f(p)
	return len(p), nil
}
