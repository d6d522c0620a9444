package content

import (
	"github.com/globalacademy/platform/internal/store"
)

// VirtualID marks localized objects that were produced on the fly and never
// persisted: translated transcripts and freshly generated quiz questions.
const VirtualID int64 = -1

// LocalizedCourse is a course with its text fields rendered in the requested
// language, plus the resolved provider name.
type LocalizedCourse struct {
	store.Course
	ProviderName string `json:"providerName"`
}

// LocalizedCourseDetail adds the course's modules, localized but without
// transcripts.
type LocalizedCourseDetail struct {
	LocalizedCourse
	Modules []store.Module `json:"modules"`
}

// LocalizedTranscript is the transcript body attached to a localized module.
// ID is VirtualID when the segments were translated on demand.
type LocalizedTranscript struct {
	ID       int64           `json:"id"`
	Segments []store.Segment `json:"segments"`
}

// LocalizedModule is a module with localized text and its transcript in the
// requested language.
type LocalizedModule struct {
	store.Module
	Transcript LocalizedTranscript `json:"transcript"`
}

// Section bounds a summary to the transcript segments overlapping
// [Start, End) seconds.
type Section struct {
	Start float64 `json:"sectionStart"`
	End   float64 `json:"sectionEnd"`
}
