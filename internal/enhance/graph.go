package enhance

import (
	"context"
	"fmt"
	"slices"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/imports"
	"github.com/talentosprecato/Mari/internal/prompts"
	"github.com/talentosprecato/Mari/pkg/decode"
)

// State keys written by the enhancement steps.
const (
	keyFilename  = "filename"
	keyLanguage  = "language"
	keySource    = "source"
	keyDocument  = "document"
	keyPreview   = "preview"
	keyCreatedAt = "created_at"
)

// previewOptions renders the preview with the modern template, every default
// section except the job search and the photo on the right.
func previewOptions(language string) prompts.Options {
	sections := slices.DeleteFunc(cv.DefaultSectionOrder(), func(id cv.SectionID) bool {
		return id == cv.SectionJobSearch
	})

	return prompts.Options{
		Template:       prompts.DefaultTemplate,
		Sections:       sections,
		Language:       language,
		PhotoAlignment: string(prompts.PhotoRight),
	}
}

// run carries the inputs of one enhancement and the first step failure, so the
// caller sees the step error itself rather than the graph's rendering of it.
type run struct {
	sys    *system
	upload Upload
	err    error
}

func (r *run) step(name string, fn func(ctx context.Context, s state.State) (state.State, error)) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		next, err := fn(ctx, s)
		if err != nil {
			if r.err == nil {
				r.err = fmt.Errorf("%s: %w", name, err)
			}
			return s, err
		}
		return next, nil
	})
}

// build wires read -> parse -> identify -> preview into graph.
func (r *run) build(graph state.StateGraph) error {
	nodes := []struct {
		name string
		node state.StateNode
	}{
		{"read", r.step("read", r.read)},
		{"parse", r.step("parse", r.parse)},
		{"identify", r.step("identify", r.identify)},
		{"preview", r.step("preview", r.preview)},
	}

	for _, n := range nodes {
		if err := graph.AddNode(n.name, n.node); err != nil {
			return err
		}
	}

	for i := 1; i < len(nodes); i++ {
		if err := graph.AddEdge(nodes[i-1].name, nodes[i].name, nil); err != nil {
			return err
		}
	}

	if err := graph.SetEntryPoint(nodes[0].name); err != nil {
		return err
	}
	return graph.SetExitPoint(nodes[len(nodes)-1].name)
}

func (r *run) read(ctx context.Context, s state.State) (state.State, error) {
	src, err := imports.Read(r.upload.Filename, r.upload.ContentType, r.upload.Data, r.sys.imports)
	if err != nil {
		return s, err
	}
	return s.Set(keySource, src), nil
}

func (r *run) parse(ctx context.Context, s state.State) (state.State, error) {
	src, err := stateValue[imports.Source](s, keySource)
	if err != nil {
		return s, err
	}

	language, _ := s.Get(keyLanguage)
	lang, _ := language.(string)

	doc, err := r.sys.ai.Parse(ctx, src, lang)
	if err != nil {
		return s, err
	}
	return s.Set(keyDocument, doc), nil
}

func (r *run) identify(ctx context.Context, s state.State) (state.State, error) {
	doc, err := stateValue[cv.Document](s, keyDocument)
	if err != nil {
		return s, err
	}

	cv.AssignIDs(&doc)
	return s.Set(keyDocument, doc), nil
}

func (r *run) preview(ctx context.Context, s state.State) (state.State, error) {
	doc, err := stateValue[cv.Document](s, keyDocument)
	if err != nil {
		return s, err
	}

	language, _ := s.Get(keyLanguage)
	lang, _ := language.(string)

	md, err := r.sys.ai.Generate(ctx, doc, previewOptions(lang))
	if err != nil {
		return s, err
	}
	return s.Set(keyPreview, md), nil
}

func stateValue[T any](s state.State, key string) (T, error) {
	v, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s not found in state", key)
	}

	t, err := decode.Into[T](v)
	if err != nil {
		return t, fmt.Errorf("decode %s: %w", key, err)
	}
	return t, nil
}
