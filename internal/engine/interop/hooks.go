package interop

import (
	"context"

	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/core/ports"
)

// Hooks are the host entry points of the interop layer. Each call runs in its own span.
type Hooks struct {
	resolver    *Resolver
	classifier  *Classifier
	synthesizer *Synthesizer
	tracer      ports.Tracer
}

// NewHooks composes the resolver, the classifier and the synthesizer over one session.
func NewHooks(s *Session, tracer ports.Tracer) *Hooks {
	classifier := NewClassifier(s)
	return &Hooks{
		resolver:    NewResolver(s),
		classifier:  classifier,
		synthesizer: NewSynthesizer(s, classifier),
		tracer:      tracer,
	}
}

// Resolve maps specifier to a module URL.
func (h *Hooks) Resolve(
	ctx context.Context,
	specifier string,
	rc domain.ResolveContext,
	next domain.DefaultResolveFunc,
) (domain.ResolveResult, error) {
	ctx, span := h.tracer.Start(ctx, "interop.resolve")
	defer span.End()
	span.SetAttribute("specifier", specifier)
	if rc.ParentURL != "" {
		span.SetAttribute("parent_url", rc.ParentURL)
	}
	if len(rc.Conditions) > 0 {
		span.SetAttribute("conditions", rc.Conditions)
	}

	res, err := h.resolver.Resolve(ctx, specifier, rc, next)
	if err != nil {
		span.RecordError(err)
		return res, err
	}
	span.SetAttribute("url", res.URL)
	return res, nil
}

// ClassifyFormat reports the format of the module at url.
func (h *Hooks) ClassifyFormat(
	ctx context.Context,
	url string,
	fc domain.FormatContext,
	next domain.DefaultClassifyFunc,
) (domain.FormatResult, error) {
	ctx, span := h.tracer.Start(ctx, "interop.classify")
	defer span.End()
	span.SetAttribute("url", url)

	res, err := h.classifier.ClassifyFormat(ctx, url, fc, next)
	if err != nil {
		span.RecordError(err)
		return res, err
	}
	span.SetAttribute("format", res.Format.String())
	return res, nil
}

// GetSource returns the source of the module at url.
func (h *Hooks) GetSource(
	ctx context.Context,
	url string,
	sc domain.SourceContext,
	next domain.DefaultSourceFunc,
) (domain.SourceResult, error) {
	ctx, span := h.tracer.Start(ctx, "interop.source")
	defer span.End()
	span.SetAttribute("url", url)

	res, err := h.synthesizer.GetSource(ctx, url, sc, next)
	if err != nil {
		span.RecordError(err)
		return res, err
	}
	span.SetAttribute("bytes", len(res.Source))
	return res, nil
}
