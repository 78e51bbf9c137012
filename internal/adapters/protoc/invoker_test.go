package protoc_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"go.uber.org/mock/gomock"

	"go.trai.ch/sgen/internal/adapters/logger"
	"go.trai.ch/sgen/internal/adapters/protoc"
	"go.trai.ch/sgen/internal/core/domain"
	"go.trai.ch/sgen/internal/core/ports/mocks"
)

func TestArgs_Ordering(t *testing.T) {
	args := protoc.Args(
		[]string{"/inc/a", "/inc/b"},
		[]string{"--x"},
		[]string{"s2.proto", "s1.proto"},
	)

	want := []string{"-I/inc/a", "-I/inc/b", "--x", "s1.proto", "s2.proto"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("expected %v, got %v", want, args)
	}
}

func TestArgs_Deterministic(t *testing.T) {
	first := protoc.Args(nil, nil, []string{"b.proto", "a.proto", "c.proto"})
	second := protoc.Args(nil, nil, []string{"c.proto", "a.proto", "b.proto"})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical argv for the same schema set, got %v vs %v", first, second)
	}
}

// writeScript creates an executable shell script for use as a stub compiler.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub compiler scripts require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700); err != nil { //nolint:gosec // Test script must be executable
		t.Fatal(err)
	}
	return path
}

func TestRun_ZeroExit(t *testing.T) {
	log := logger.New()
	log.SetOutput(io.Discard)
	invoker := protoc.NewInvoker(log)

	bin := writeScript(t, t.TempDir(), "compiler", "exit 0")
	code, err := invoker.Run(context.Background(), bin, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestRun_NonzeroExitIsValueNotError(t *testing.T) {
	log := logger.New()
	log.SetOutput(io.Discard)
	invoker := protoc.NewInvoker(log)

	bin := writeScript(t, t.TempDir(), "compiler", "exit 3")
	code, err := invoker.Run(context.Background(), bin, nil, nil, nil)
	if err != nil {
		t.Fatalf("nonzero exit must not be an error here: %v", err)
	}
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
}

func TestRun_StreamsStdoutToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info("line1").Times(1)
	mockLogger.EXPECT().Info("line2").Times(1)

	invoker := protoc.NewInvoker(mockLogger)
	bin := writeScript(t, t.TempDir(), "compiler", "echo line1\necho line2")

	code, err := invoker.Run(context.Background(), bin, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	log := logger.New()
	log.SetOutput(io.Discard)
	invoker := protoc.NewInvoker(log)

	_, err := invoker.Run(context.Background(), filepath.Join(t.TempDir(), "no-such-binary"), nil, nil, nil)
	if err == nil {
		t.Fatal("expected launch failure")
	}
	if !errors.Is(err, domain.ErrLaunchFailure) {
		t.Errorf("expected ErrLaunchFailure, got %v", err)
	}
}
