package kube

import (
	"context"
	"errors"
	"testing"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestClient_GetPod_NotFound(t *testing.T) {
	c, err := New(WithClientset(fake.NewClientset()), WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.GetPod(context.Background(), "shop", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPod error = %v, want ErrNotFound", err)
	}
}

func TestClient_GetPod(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "shop"},
		Status: corev1.PodStatus{
			Phase: corev1.PodPending,
			ContainerStatuses: []corev1.ContainerStatus{
				{Name: "app", State: corev1.ContainerState{
					Waiting: &corev1.ContainerStateWaiting{Reason: "ImagePullBackOff"},
				}},
			},
		},
	}
	cs := fake.NewClientset(pod)
	c, err := New(WithClientset(cs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap, err := c.GetPod(context.Background(), "shop", "checkout")
	if err != nil {
		t.Fatalf("GetPod: %v", err)
	}
	if snap.Name != "checkout" || snap.Namespace != "shop" {
		t.Errorf("identity = %s/%s", snap.Namespace, snap.Name)
	}
	if len(snap.Containers) != 1 || snap.Containers[0].State.Reason != "ImagePullBackOff" {
		t.Errorf("containers = %+v", snap.Containers)
	}
}

func TestClient_ListPods(t *testing.T) {
	cs := fake.NewClientset(
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "a", Namespace: "shop"}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "b", Namespace: "shop"}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "c", Namespace: "other"}},
	)
	c, err := New(WithClientset(cs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snaps, err := c.ListPods(context.Background(), "shop")
	if err != nil {
		t.Fatalf("ListPods: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d pods in shop, want 2", len(snaps))
	}

	all, err := c.ListPods(context.Background(), "")
	if err != nil {
		t.Fatalf("ListPods all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d pods cluster-wide, want 3", len(all))
	}
}

func TestClient_GetEvents_SortedNewestFirst(t *testing.T) {
	older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	cs := fake.NewClientset(
		&corev1.Event{
			ObjectMeta:    metav1.ObjectMeta{Name: "ev-old", Namespace: "shop"},
			Reason:        "Scheduled",
			LastTimestamp: metav1.Time{Time: older},
		},
		&corev1.Event{
			ObjectMeta:    metav1.ObjectMeta{Name: "ev-new", Namespace: "shop"},
			Reason:        "Failed",
			LastTimestamp: metav1.Time{Time: newer},
		},
	)
	c, err := New(WithClientset(cs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	events, err := c.GetEvents(context.Background(), "shop", "")
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Reason != "Failed" {
		t.Errorf("first event = %q, want newest (Failed)", events[0].Reason)
	}
}

func TestClient_GetLogs(t *testing.T) {
	cs := fake.NewClientset(&corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "checkout", Namespace: "shop"},
	})
	c, err := New(WithClientset(cs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text, err := c.GetLogs(context.Background(), "shop", "checkout", LogOptions{TailLines: 50})
	if err != nil {
		t.Fatalf("GetLogs: %v", err)
	}
	if text == "" {
		t.Error("expected the fake clientset's canned log body")
	}
}
