// Package recommend turns detected issues into actionable output: per-issue
// diagnostic commands, quick fixes, explanations and patch templates, plus
// an aggregate confidence score. All commands are advisory text; nothing
// here touches the cluster.
package recommend

import (
	"strings"

	"podscout/internal/diagnose"
)

// Template placeholders. Substitution is verbatim; commands are advisory
// text, so no shell escaping is applied.
const (
	phPod       = "{pod}"
	phNamespace = "{namespace}"
)

// template is the fix bundle for one catalog kind.
type template struct {
	commands    []string
	quickFixes  []string
	explanation string
	patch       string
}

// render substitutes pod identity into a template string.
func render(s, pod, namespace string) string {
	return strings.NewReplacer(phPod, pod, phNamespace, namespace).Replace(s)
}

// generalCommands is the fixed diagnostic block appended to every bundle
// regardless of which issues were found.
var generalCommands = []string{
	"kubectl get pod {pod} -n {namespace} -o wide",
	"kubectl describe pod {pod} -n {namespace}",
	"kubectl logs {pod} -n {namespace}",
	"kubectl get events -n {namespace} --sort-by=.lastTimestamp",
	"kubectl top pod {pod} -n {namespace}",
	"kubectl get svc,endpoints -n {namespace}",
	"kubectl describe node $(kubectl get pod {pod} -n {namespace} -o jsonpath='{.spec.nodeName}')",
}

// templates maps every catalog kind to its fix bundle.
var templates = map[diagnose.Kind]template{
	diagnose.KindCrashLoopBackOff: {
		commands: []string{
			"kubectl logs {pod} -n {namespace} --previous",
			"kubectl describe pod {pod} -n {namespace}",
			"kubectl get pod {pod} -n {namespace} -o yaml",
		},
		quickFixes: []string{
			"Check previous container logs for startup errors",
			"Verify application configuration and environment variables",
			"Review resource limits and requests",
			"Check liveness and readiness probe configurations",
		},
		explanation: "Pod is crashing repeatedly. This usually indicates application startup issues, configuration problems, or resource constraints.",
		patch:       crashLoopPatch,
	},
	diagnose.KindImagePullError: {
		commands: []string{
			"kubectl describe pod {pod} -n {namespace}",
			"kubectl get events -n {namespace} --sort-by=.lastTimestamp",
			"kubectl get pod {pod} -n {namespace} -o jsonpath='{.spec.containers[*].image}'",
		},
		quickFixes: []string{
			"Verify image name and tag are correct",
			"Check registry credentials and access",
			"Ensure registry is accessible from cluster",
			"Try pulling image manually: docker pull <image>",
		},
		explanation: "Cannot pull container image. Check image name, registry access, and credentials.",
		patch:       imagePullPatch,
	},
	diagnose.KindOOMKilled: {
		commands: []string{
			"kubectl describe pod {pod} -n {namespace}",
			"kubectl top pod {pod} -n {namespace}",
			"kubectl logs {pod} -n {namespace} --previous",
		},
		quickFixes: []string{
			"Increase memory limits in pod specification",
			"Review application memory usage and optimize if possible",
			"Check for memory leaks in application",
			"Consider using memory profiling tools",
		},
		explanation: "Container was killed due to out of memory. Increase memory limits or optimize application memory usage.",
		patch:       memoryPatch,
	},
	diagnose.KindHighRestartCount: {
		commands: []string{
			"kubectl logs {pod} -n {namespace} --previous",
			"kubectl describe pod {pod} -n {namespace}",
			"kubectl get pod {pod} -n {namespace} -o jsonpath='{.status.containerStatuses[*].lastState}'",
		},
		quickFixes: []string{
			"Check previous container logs for the crash cause",
			"Relax liveness probe timings if probes are killing the container",
		},
		explanation: "Container has restarted many times. Inspect the last termination state and probe settings to find what keeps killing it.",
		patch:       crashLoopPatch,
	},
	diagnose.KindPodPending: {
		commands: []string{
			"kubectl describe pod {pod} -n {namespace}",
			"kubectl describe nodes",
			"kubectl get events -n {namespace}",
			"kubectl get pod {pod} -n {namespace} -o yaml",
		},
		quickFixes: []string{
			"Check node resources and availability",
			"Verify scheduling constraints (nodeSelector, affinity)",
			"Check persistent volume claims if used",
			"Review resource requests vs available node capacity",
		},
		explanation: "Pod cannot be scheduled. Usually due to insufficient resources, scheduling constraints, or node issues.",
		patch:       schedulingPatch,
	},
	diagnose.KindConditionFailed: {
		commands: []string{
			"kubectl describe pod {pod} -n {namespace}",
			"kubectl get pod {pod} -n {namespace} -o jsonpath='{.status.conditions}'",
			"kubectl describe nodes",
		},
		quickFixes: []string{
			"Read the failing condition's message for the blocking reason",
			"Check readiness probes and init containers",
		},
		explanation: "A pod condition (Ready or PodScheduled) is false. The condition message names what is blocking the pod.",
	},
	diagnose.KindWarningEvent: {
		commands: []string{
			"kubectl get events -n {namespace} --sort-by=.lastTimestamp",
			"kubectl describe pod {pod} -n {namespace}",
		},
		quickFixes: []string{
			"Inspect the warning event message for the failing operation",
			"Correlate event timestamps with container restarts",
		},
		explanation: "The cluster emitted warning events for this pod. Their reasons and messages point at the failing operation (scheduling, mounting, starting).",
	},
	diagnose.KindLogErrorPattern: {
		commands: []string{
			"kubectl logs {pod} -n {namespace} --tail=200",
			"kubectl get svc -n {namespace}",
			"kubectl get endpoints -n {namespace}",
		},
		quickFixes: []string{
			"Review the matched log lines for the underlying error",
			"Check service endpoints if the errors are connection failures",
		},
		explanation: "Error patterns were found in the container logs. The matched lines narrow down the failing component.",
	},
}

const crashLoopPatch = `# Potential fixes for repeated container crashes:

1. Increase resource limits:
spec:
  containers:
  - name: <container-name>
    resources:
      limits:
        memory: "512Mi"
        cpu: "500m"
      requests:
        memory: "256Mi"
        cpu: "250m"

2. Adjust probe timings:
spec:
  containers:
  - name: <container-name>
    livenessProbe:
      initialDelaySeconds: 60
      periodSeconds: 30
      timeoutSeconds: 10
    readinessProbe:
      initialDelaySeconds: 30
      periodSeconds: 15

3. Add debug command (temporary):
spec:
  containers:
  - name: <container-name>
    command: ["/bin/sh"]
    args: ["-c", "sleep 3600"]  # Keep container running for debugging
`

const imagePullPatch = `# Fixes for image pull issues:

1. Add image pull secrets:
spec:
  imagePullSecrets:
  - name: <registry-secret>

2. Use specific image tag (avoid 'latest'):
spec:
  containers:
  - name: <container-name>
    image: <registry>/<image>:<specific-tag>
    imagePullPolicy: IfNotPresent

3. Create registry secret:
kubectl create secret docker-registry <secret-name> \
  --docker-server=<registry-url> \
  --docker-username=<username> \
  --docker-password=<password> \
  --docker-email=<email>
`

const memoryPatch = `# Fixes for OOM (Out of Memory) issues:

1. Increase memory limits:
spec:
  containers:
  - name: <container-name>
    resources:
      limits:
        memory: "1Gi"  # Increase as needed
      requests:
        memory: "512Mi"

2. Add memory monitoring:
spec:
  containers:
  - name: <container-name>
    env:
    - name: JAVA_OPTS  # For Java apps
      value: "-Xmx800m -XX:+UseG1GC"
`

const schedulingPatch = `# Fixes for pod scheduling issues:

1. Reduce resource requests:
spec:
  containers:
  - name: <container-name>
    resources:
      requests:
        memory: "128Mi"  # Reduce if too high
        cpu: "100m"

2. Add node selector (if needed):
spec:
  nodeSelector:
    kubernetes.io/os: linux

3. Add tolerations (if needed):
spec:
  tolerations:
  - key: "node-role.kubernetes.io/master"
    operator: "Exists"
    effect: "NoSchedule"
`
