package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/parser"
	"github.com/dgallion1/docproof/internal/validate"
)

// handleParse parses an upload synchronously and returns its document
// tree. With ?validate=true the validators run too and their defects are
// included.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	p, err := parser.ForFile(filename, s.orchestrator.ParserOptions())
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse: "+err.Error(), statusFor(err))
		return
	}

	resp := map[string]any{
		"document":  doc,
		"sentences": len(doc.Sentences()),
	}
	if r.URL.Query().Get("validate") == "true" {
		defects, err := s.orchestrator.Runner().Run(r.Context(), doc)
		if err != nil {
			jsonError(w, "validate: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if defects == nil {
			defects = []validate.Defect{}
		}
		resp["defects"] = defects
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// statusFor maps parse errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnsupported):
		return http.StatusBadRequest
	case errs.IsConfiguration(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
