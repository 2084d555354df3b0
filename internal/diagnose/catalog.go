// Package diagnose is the issue-detection core: a fixed catalog of failure
// signatures plus three pure detectors (status classifier, log scanner,
// event filter) that run over an already-gathered snapshot. Nothing in this
// package performs I/O or holds state between runs.
package diagnose

import "strings"

// Kind is a detected issue category, drawn from a closed catalog.
type Kind string

const (
	KindCrashLoopBackOff Kind = "CrashLoopBackOff"
	KindImagePullError   Kind = "ImagePullError"
	KindOOMKilled        Kind = "OOMKilled"
	KindHighRestartCount Kind = "HighRestartCount"
	KindPodPending       Kind = "PodPending"
	KindConditionFailed  Kind = "ConditionFailed"
	KindWarningEvent     Kind = "WarningEvent"
	KindLogErrorPattern  Kind = "LogErrorPattern"
)

// Severity ranks how urgent an issue is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Category groups issues by the subsystem they point at.
type Category string

const (
	CategoryRuntime       Category = "runtime"
	CategoryConfiguration Category = "configuration"
	CategoryResources     Category = "resources"
	CategoryScheduling    Category = "scheduling"
)

// Issue is one detected problem: a catalog kind plus free-text detail
// (container name, condition message, event reason and message, ...).
type Issue struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
}

// String renders the issue the way it appears in reports:
// the detail text, which always contains the signature keywords.
func (i Issue) String() string { return i.Detail }

// Signature is one row of the issue catalog. Keywords are matched by
// lowercase substring containment against free-text issue descriptions.
type Signature struct {
	Kind     Kind
	Keywords []string
	Severity Severity
	Category Category
}

// Catalog is the fixed, ordered issue-signature table. Order matters:
// MatchText returns the first signature whose keyword is contained in
// the text, so more specific signatures come first.
var Catalog = []Signature{
	{Kind: KindCrashLoopBackOff, Keywords: []string{"crashloopbackoff", "crash loop"}, Severity: SeverityHigh, Category: CategoryRuntime},
	{Kind: KindImagePullError, Keywords: []string{"imagepullbackoff", "errimagepull", "image pull"}, Severity: SeverityHigh, Category: CategoryConfiguration},
	{Kind: KindOOMKilled, Keywords: []string{"oomkilled", "out of memory", "oom"}, Severity: SeverityHigh, Category: CategoryResources},
	{Kind: KindHighRestartCount, Keywords: []string{"restart count", "restarting"}, Severity: SeverityHigh, Category: CategoryRuntime},
	{Kind: KindPodPending, Keywords: []string{"pending", "scheduling", "failed state"}, Severity: SeverityMedium, Category: CategoryScheduling},
	{Kind: KindConditionFailed, Keywords: []string{"condition"}, Severity: SeverityMedium, Category: CategoryScheduling},
	{Kind: KindWarningEvent, Keywords: []string{"warning event"}, Severity: SeverityMedium, Category: CategoryRuntime},
	{Kind: KindLogErrorPattern, Keywords: []string{"error patterns", "log error"}, Severity: SeverityLow, Category: CategoryRuntime},
}

var catalogByKind = func() map[Kind]Signature {
	m := make(map[Kind]Signature, len(Catalog))
	for _, s := range Catalog {
		m[s.Kind] = s
	}
	return m
}()

// Lookup returns the catalog signature for a kind. ok is false for kinds
// outside the catalog; callers must skip those, never fail.
func Lookup(k Kind) (Signature, bool) {
	s, ok := catalogByKind[k]
	return s, ok
}

// MatchText classifies a free-text issue description by substring
// containment, the way loose status strings (scan output, user input)
// are mapped onto the catalog.
func MatchText(text string) (Signature, bool) {
	lower := strings.ToLower(text)
	for _, s := range Catalog {
		for _, kw := range s.Keywords {
			if strings.Contains(lower, kw) {
				return s, true
			}
		}
	}
	return Signature{}, false
}
