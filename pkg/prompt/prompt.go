package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/segmentio/ksuid"

	"storycue/pkg/extract"
	"storycue/pkg/mood"
	"storycue/pkg/utils"
)

// defaultImageStyle is always part of an image prompt; a caller style is
// appended after it rather than replacing it.
const defaultImageStyle = "highly detailed digital art, cinematic lighting, 8k resolution, trending on ArtStation"

// moodAudio maps detected moods to instrumentation phrases for a 20-30s
// ambient loop. Moods outside the table fall back to fallbackAudio.
var moodAudio = map[string]string{
	"joy":      "bright strings and upbeat tempo",
	"sadness":  "slow piano with reverb",
	"fear":     "dissonant drones and suspenseful pulses",
	"anger":    "heavy percussion and distorted synths",
	"surprise": "sharp staccato notes",
}

const fallbackAudio = "ambient soundscape"

// Builder composes analyzer outputs into generation prompts. All three
// analyzers are injected; the builder holds no state of its own.
type Builder struct {
	entities *extract.Extractor
	actions  *extract.ActionExtractor
	moods    *mood.Detector
}

func New(entities *extract.Extractor, actions *extract.ActionExtractor, moods *mood.Detector) *Builder {
	return &Builder{entities: entities, actions: actions, moods: moods}
}

// Options adjusts image prompt assembly.
type Options struct {
	// Style is appended after the default style descriptor when non-empty.
	Style string
	// IncludeContext prepends the original passage so models that accept
	// free-form context can reference the full prose.
	IncludeContext bool
}

// ImagePrompt composes an image-generation instruction string from a
// passage. Any analyzer failure propagates; a prompt is never assembled from
// partial results.
func (b *Builder) ImagePrompt(ctx context.Context, text string, opts Options) (string, error) {
	id := ksuid.New().String()

	ents, err := b.entities.Entities(ctx, text)
	if err != nil {
		return "", fmt.Errorf("image prompt: %w", err)
	}
	action, hasAction, err := b.actions.Action(ctx, text)
	if err != nil {
		return "", fmt.Errorf("image prompt: %w", err)
	}
	top, hasMood, err := b.moods.Top(ctx, text)
	if err != nil {
		return "", fmt.Errorf("image prompt: %w", err)
	}

	people, places := partition(ents)

	var parts []string
	if len(people) > 0 {
		parts = append(parts, people...)
	} else {
		// Downstream image models need a subject.
		parts = append(parts, "a figure")
	}
	if hasAction {
		parts = append(parts, action)
	}
	if len(places) > 0 {
		parts = append(parts, "in "+strings.Join(places, ", "))
	}
	if hasMood {
		parts = append(parts, "mood: "+top.Mood)
	}
	parts = append(parts, defaultImageStyle)
	if opts.Style != "" {
		parts = append(parts, opts.Style)
	}

	instr := strings.Join(parts, "; ")
	log.Info("built image prompt", "id", id, "people", len(people), "places", len(places), "action", hasAction, "prompt", utils.LimitStr(instr, 120))

	if !opts.IncludeContext {
		return instr, nil
	}
	return fmt.Sprintf("### CONTEXT\n%s\n\n### IMAGE INSTRUCTIONS\n%s", strings.TrimSpace(text), instr), nil
}

// AudioPrompt returns a one-line descriptor for an ambient loop matching the
// passage's dominant mood.
func (b *Builder) AudioPrompt(ctx context.Context, text string) (string, error) {
	id := ksuid.New().String()

	top, ok, err := b.moods.Top(ctx, text)
	if err != nil {
		return "", fmt.Errorf("audio prompt: %w", err)
	}

	desc := fallbackAudio
	if ok {
		if mapped, found := moodAudio[top.Mood]; found {
			desc = mapped
		}
	}
	log.Info("built audio prompt", "id", id, "mood", top.Mood, "descriptor", desc)
	return desc + " loop", nil
}

func partition(entities []extract.Entity) (people, places []string) {
	for _, ent := range entities {
		switch ent.Type {
		case extract.Person:
			people = append(people, ent.Text)
		case extract.Location:
			places = append(places, ent.Text)
		}
	}
	return people, places
}
