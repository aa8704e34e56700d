package core

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// NoteSpec wires the Notes collection. Notes have no toggle relationship
// and are never mutated after creation.
func NoteSpec() EntitySpec[Note] {
	return EntitySpec[Note]{
		Key:  KeyNotes,
		Seed: seedNotes,
		ID:   func(n Note) string { return n.ID },
		AssignID: func(n Note, id string) Note {
			n.ID = id
			return n
		},
		Validate: func(n Note) error {
			return requireFields(
				"title", n.Title,
				"content", n.Content,
			)
		},
		SearchText: func(n Note) []string {
			return []string{n.Title, n.Subject, n.Content}
		},
		Match: func(n Note, category string) bool {
			return category == FilterAll || string(n.Type) == category
		},
		Created: func(n Note) Notification {
			return success("Analysis complete", fmt.Sprintf("AI has analyzed your content and created a summary for %q.", n.Title))
		},
	}
}

// SourceKind identifies where a notes submission came from.
type SourceKind string

const (
	// SourceFile marks a submission referencing an uploaded file.
	SourceFile SourceKind = "file"
	// SourceText marks pasted text.
	SourceText SourceKind = "text"
)

// NotesAnalyzer runs the asynchronous creation pipeline for notes: a
// submission enters a processing state, the summary and follow-up questions
// are synthesized after a simulated analysis delay, and the finished note is
// created in the Notes collection. At most one analysis runs at a time.
type NotesAnalyzer struct {
	mu         sync.Mutex
	processing bool

	notes    *Collection[Note]
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	delay    time.Duration
	sleep    func(time.Duration)
}

// NewNotesAnalyzer wires the analyzer to its target collection.
func NewNotesAnalyzer(notes *Collection[Note], notifier Notifier, logger *slog.Logger, now func() time.Time, delay time.Duration) *NotesAnalyzer {
	return &NotesAnalyzer{
		notes:    notes,
		notifier: notifier,
		logger:   logger,
		now:      now,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

// Processing reports whether an analysis is currently in flight.
func (a *NotesAnalyzer) Processing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processing
}

// ProcessSubmission starts an analysis of source. For SourceFile the source
// is the uploaded file name; for SourceText it is the pasted text itself.
// While one analysis is in flight further submissions are rejected with
// ErrAlreadyProcessing and the Notes sequence stays untouched.
//
// The returned channel delivers the created note once the analysis
// completes; an analysis always runs to completion, there is no
// cancellation path.
func (a *NotesAnalyzer) ProcessSubmission(source string, kind SourceKind) (<-chan Note, error) {
	if strings.TrimSpace(source) == "" {
		err := &ValidationError{Missing: []string{"source"}}
		notify(a.notifier, failure("Nothing to analyze", err.Error()))
		return nil, err
	}

	a.mu.Lock()
	if a.processing {
		a.mu.Unlock()
		notify(a.notifier, failure("Analysis in progress", "Please wait for the current analysis to finish."))
		return nil, ErrAlreadyProcessing
	}
	a.processing = true
	a.mu.Unlock()

	a.logger.Info("analysis started", "kind", string(kind))
	done := make(chan Note, 1)

	go func() {
		defer close(done)
		a.sleep(a.delay)

		note, err := a.notes.Create(a.synthesize(source, kind))

		a.mu.Lock()
		a.processing = false
		a.mu.Unlock()

		if err != nil {
			a.logger.Warn("analysis produced an invalid note", "error", err)
			return
		}
		done <- note
	}()

	return done, nil
}

// synthesize builds the finished note for a submission: title and subject
// depend on the source kind, the summary and questions are produced together
// and never edited afterwards.
func (a *NotesAnalyzer) synthesize(source string, kind SourceKind) Note {
	title := "Text Analysis"
	subject := "Manual Input"
	content := source
	if kind == SourceFile {
		title = strings.TrimSuffix(source, ".pdf")
		subject = "Uploaded Content"
		content = "This is the extracted content from your uploaded file."
	}

	return Note{
		Title:   title,
		Subject: subject,
		Content: content,
		Summary: fmt.Sprintf("AI-generated summary for %q with key insights and main points.", title),
		Questions: []string{
			"What are the main topics covered?",
			"How do these concepts relate to each other?",
			"What are the practical applications?",
		},
		CreatedAt: a.now().UTC().Format("2006-01-02"),
		Type:      NoteAIGenerated,
	}
}

func seedNotes() []Note {
	return []Note{
		{
			ID:      "1",
			Title:   "Machine Learning Fundamentals",
			Subject: "Computer Science",
			Content: "Machine learning is a subset of artificial intelligence focused on systems that learn from data.",
			Summary: "Key concepts: supervised learning, unsupervised learning, neural networks.",
			Questions: []string{
				"What is the difference between supervised and unsupervised learning?",
				"How do neural networks work?",
			},
			CreatedAt: "2025-07-10",
			Type:      NoteAIGenerated,
		},
		{
			ID:      "2",
			Title:   "Database Design Principles",
			Subject: "Computer Science",
			Content: "Database design involves creating a detailed data model of a database.",
			Summary: "Important topics: normalization, ER diagrams, ACID properties.",
			Questions: []string{
				"What are the benefits of normalization?",
				"What are ACID properties?",
			},
			CreatedAt: "2025-07-08",
			Type:      NoteManual,
		},
		{
			ID:      "3",
			Title:   "Quantum Physics Basics",
			Subject: "Physics",
			Content: "Quantum physics describes the behavior of matter and energy at the smallest scales.",
			Summary: "Core principles: wave-particle duality, uncertainty principle.",
			Questions: []string{
				"What is wave-particle duality?",
				"What are applications of quantum entanglement?",
			},
			CreatedAt: "2025-07-05",
			Type:      NoteAIGenerated,
		},
	}
}
