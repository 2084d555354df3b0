// Package kube reads pod state, logs and events from a Kubernetes cluster
// and converts them into the snapshot types the diagnosis core consumes.
package kube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"podscout/internal/logging"
	"podscout/internal/snapshot"
)

// LogOptions narrows a log request to one container and a tail window.
type LogOptions struct {
	Container string
	TailLines int
	Previous  bool
}

// Source is the read surface the rest of the tool depends on. Client is
// the cluster-backed implementation; tests provide fakes.
type Source interface {
	GetPod(ctx context.Context, namespace, name string) (snapshot.PodSnapshot, error)
	GetLogs(ctx context.Context, namespace, name string, opts LogOptions) (string, error)
	GetEvents(ctx context.Context, namespace, podName string) ([]snapshot.EventRecord, error)
	ListPods(ctx context.Context, namespace string) ([]snapshot.PodSnapshot, error)
	FollowLogs(ctx context.Context, namespace, name string, opts LogOptions, w io.Writer) error
	TopPod(ctx context.Context, namespace, name string) (*snapshot.ResourceUsage, error)
}

const defaultTimeout = 30 * time.Second

// Client reads from a live cluster through client-go.
type Client struct {
	clientset  kubernetes.Interface
	kubeconfig string
	timeout    time.Duration
	log        *slog.Logger
}

// Option adjusts Client construction.
type Option func(*Client)

// WithKubeconfig points the client at an explicit kubeconfig file instead
// of the default loading rules.
func WithKubeconfig(path string) Option {
	return func(c *Client) { c.kubeconfig = path }
}

// WithTimeout bounds every single cluster call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithClientset injects a pre-built clientset and skips kubeconfig loading.
func WithClientset(cs kubernetes.Interface) Option {
	return func(c *Client) { c.clientset = cs }
}

// New builds a Client. Without WithClientset it loads connection details
// from the kubeconfig, falling back to in-cluster config when running
// inside a pod.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		timeout: defaultTimeout,
		log:     logging.New("kube"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clientset != nil {
		return c, nil
	}

	cfg, err := buildConfig(c.kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("load cluster config: %w", err)
	}
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}
	c.clientset = cs
	return c, nil
}

func buildConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig == "" {
		if cfg, err := rest.InClusterConfig(); err == nil {
			return cfg, nil
		}
	}
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{})
	return loader.ClientConfig()
}

// GetPod fetches one pod and converts its status. Logs, events and usage
// are left empty; BuildSnapshot fills them in.
func (c *Client) GetPod(ctx context.Context, namespace, name string) (snapshot.PodSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pod, err := c.clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return snapshot.PodSnapshot{}, classify("get pod "+namespace+"/"+name, err)
	}
	return convertPod(pod), nil
}

// GetLogs returns one container's log tail as text.
func (c *Client) GetLogs(ctx context.Context, namespace, name string, opts LogOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.logRequest(namespace, name, opts, false).DoRaw(ctx)
	if err != nil {
		return "", classify("get logs "+namespace+"/"+name, err)
	}
	return string(data), nil
}

// FollowLogs streams logs into w until the stream closes or ctx is done.
// The per-call timeout does not apply; the caller owns the lifetime.
func (c *Client) FollowLogs(ctx context.Context, namespace, name string, opts LogOptions, w io.Writer) error {
	stream, err := c.logRequest(namespace, name, opts, true).Stream(ctx)
	if err != nil {
		return classify("follow logs "+namespace+"/"+name, err)
	}
	defer stream.Close()

	if _, err := io.Copy(w, stream); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream logs %s/%s: %w", namespace, name, err)
	}
	return nil
}

func (c *Client) logRequest(namespace, name string, opts LogOptions, follow bool) *rest.Request {
	logOpts := &corev1.PodLogOptions{
		Container: opts.Container,
		Previous:  opts.Previous,
		Follow:    follow,
	}
	if opts.TailLines > 0 {
		tail := int64(opts.TailLines)
		logOpts.TailLines = &tail
	}
	return c.clientset.CoreV1().Pods(namespace).GetLogs(name, logOpts)
}

// GetEvents lists events in the namespace, optionally narrowed to one pod,
// most-recent-first.
func (c *Client) GetEvents(ctx context.Context, namespace, podName string) ([]snapshot.EventRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	listOpts := metav1.ListOptions{}
	if podName != "" {
		listOpts.FieldSelector = "involvedObject.name=" + podName
	}
	list, err := c.clientset.CoreV1().Events(namespace).List(ctx, listOpts)
	if err != nil {
		return nil, classify("list events "+namespace, err)
	}

	records := make([]snapshot.EventRecord, 0, len(list.Items))
	for _, ev := range list.Items {
		records = append(records, convertEvent(ev))
	}
	return snapshot.SortEventsByTime(records), nil
}

// ListPods returns status-only snapshots for every pod in the namespace.
// An empty namespace lists the whole cluster.
func (c *Client) ListPods(ctx context.Context, namespace string) ([]snapshot.PodSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	list, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, classify("list pods "+namespace, err)
	}

	snaps := make([]snapshot.PodSnapshot, 0, len(list.Items))
	for i := range list.Items {
		snaps = append(snaps, convertPod(&list.Items[i]))
	}
	return snaps, nil
}

// TopPod shells out to kubectl for metrics, since metrics-server is often
// absent. Callers treat any error as "usage unknown".
func (c *Client) TopPod(ctx context.Context, namespace, name string) (*snapshot.ResourceUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"top", "pod", name, "--no-headers"}
	if namespace != "" {
		args = append(args, "-n", namespace)
	}
	if c.kubeconfig != "" {
		args = append(args, "--kubeconfig", c.kubeconfig)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "kubectl", args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("kubectl top pod %s/%s: %w", namespace, name, err)
	}
	return parseTopLine(out.String())
}

// parseTopLine reads a "NAME CPU MEMORY" row from kubectl top output.
func parseTopLine(s string) (*snapshot.ResourceUsage, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 3 {
		return nil, fmt.Errorf("unexpected kubectl top output: %q", strings.TrimSpace(s))
	}
	return &snapshot.ResourceUsage{CPU: fields[1], Memory: fields[2]}, nil
}
