package preview

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/veloria/catalog-api/internal/domain"
	"github.com/veloria/catalog-api/internal/logger"
	"github.com/veloria/catalog-api/internal/metrics"
)

const gzipLevel = 5

// stage names one step of the interception pipeline. advance enforces the
// sequence so the transport invariant (encoding headers fixed before any
// body byte) is checked, not implied by middleware registration order.
type stage int

const (
	stageStart stage = iota
	stageClassified
	stageTransportDecided
	stageResolved
)

func (s stage) advance(next stage) stage {
	if next != s+1 {
		panic(fmt.Sprintf("preview pipeline: illegal transition %d -> %d", s, next))
	}
	return next
}

// Pipeline composes classification, the transport policy and preview
// synthesis ahead of the JSON API router. Exactly one response is sent per
// request: either a synthesized preview document, or whatever the wrapped
// router produces.
type Pipeline struct {
	classifier *Classifier
	synth      *Synthesizer
	log        logger.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(classifier *Classifier, synth *Synthesizer, log logger.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		synth:      synth,
		log:        log,
	}
}

// Handler wraps next with the crawler-aware pipeline.
func (p *Pipeline) Handler(next http.Handler) http.Handler {
	// Ordinary clients get chi's gzip negotiation around the whole router,
	// which never declares an encoding it did not produce.
	compressed := middleware.Compress(gzipLevel)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := stageStart

		cr := p.classifier.Classify(r.UserAgent(), r.URL.Path)
		st = st.advance(stageClassified)

		if !cr.IsCrawler {
			st = st.advance(stageTransportDecided)
			compressed.ServeHTTP(w, r)
			st.advance(stageResolved)
			return
		}

		// Crawlers that mishandle compressed bodies must receive a body whose
		// declared encoding matches the bytes actually sent.
		w.Header().Set("Content-Encoding", "identity")
		st = st.advance(stageTransportDecided)

		if cr.ProductID != "" && p.intercept(w, r, cr.ProductID) {
			st.advance(stageResolved)
			return
		}

		next.ServeHTTP(w, r)
		st.advance(stageResolved)
	})
}

// intercept reports whether a preview response was written. Any synthesis
// failure leaves the response untouched so the request falls through to the
// JSON router instead of surfacing an error page.
func (p *Pipeline) intercept(w http.ResponseWriter, r *http.Request, productID string) (served bool) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error("preview synthesis panicked",
				logger.String("product_id", productID),
				logger.String("panic", fmt.Sprint(rec)))
			metrics.PreviewFallthroughs.WithLabelValues("panic").Inc()
			served = false
		}
	}()

	pv, err := p.synth.Synthesize(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.PreviewFallthroughs.WithLabelValues("not_found").Inc()
		} else {
			p.log.Warn("preview synthesis failed, falling through",
				logger.String("product_id", productID),
				logger.Error(err))
			metrics.PreviewFallthroughs.WithLabelValues("error").Inc()
		}
		return false
	}

	// Rendered into a buffer first: a failure mid-render must not leak a
	// partial body before falling through.
	var buf bytes.Buffer
	if err := p.synth.Render(&buf, pv); err != nil {
		p.log.Error("preview render failed, falling through",
			logger.String("product_id", productID),
			logger.Error(err))
		metrics.PreviewFallthroughs.WithLabelValues("render_error").Inc()
		return false
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		p.log.Debugf("preview write failed: %v", err)
	}

	metrics.PreviewIntercepts.Inc()
	p.log.Info("served crawler preview",
		logger.String("product_id", productID),
		logger.String("user_agent", r.UserAgent()))
	return true
}
