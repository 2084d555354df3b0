package kube

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

var (
	// ErrNotFound means the pod does not exist in the namespace.
	ErrNotFound = errors.New("pod not found")
	// ErrUnreachable means the cluster API could not be reached.
	ErrUnreachable = errors.New("cluster unreachable")
	// ErrTimeout means the call did not complete within the bounded wait.
	ErrTimeout = errors.New("cluster request timed out")
)

// classify maps a client-go error onto the package sentinels, keeping the
// original error text. op names the failing call for the message.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case apierrors.IsNotFound(err):
		return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
	case apierrors.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %v", op, ErrTimeout, err)
	case isNetworkError(err):
		return fmt.Errorf("%s: %w: %v", op, ErrUnreachable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
