package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/scenarist/pkg/adapters/memory"
	"github.com/aretw0/scenarist/pkg/composer"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/aretw0/scenarist/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

type templateResponse struct {
	domain.StepTemplate
	Label    string        `json:"label"`
	Document string        `json:"document"`
	Schema   schema.Schema `json:"schema,omitempty"`
}

type documentRequest struct {
	Data string `json:"data"`
}

type formatResponse struct {
	Data          string                `json:"data"`
	Error         string                `json:"error,omitempty"`
	Line          int                   `json:"line,omitempty"`
	Column        int                   `json:"column,omitempty"`
	Offset        int64                 `json:"offset,omitempty"`
	Notifications []domain.Notification `json:"notifications"`
}

type formRequest struct {
	Fields     map[string]string `json:"fields"`
	StepType   string            `json:"step_type"`
	ScenarioID string            `json:"scenario_id"`
}

type formResponse struct {
	Fields        map[string]string     `json:"fields"`
	Changed       bool                  `json:"changed"`
	Order         int                   `json:"order,omitempty"`
	Notifications []domain.Notification `json:"notifications"`
}

type composeRequest struct {
	StepType  string              `json:"step_type"`
	Name      string              `json:"name"`
	Rows      []map[string]string `json:"rows"`
	RowFields []string            `json:"row_fields"`
	CanAddRow *bool               `json:"can_add_row"`
}

type composeResponse struct {
	Rows          []map[string]string   `json:"rows"`
	Added         bool                  `json:"added"`
	Notifications []domain.Notification `json:"notifications"`
}

type cleanRequest struct {
	StepType   string `json:"step_type"`
	Data       string `json:"data"`
	ScenarioID string `json:"scenario_id"`
	StepID     string `json:"step_id"`
	Order      int    `json:"order"`
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (s *Server) template(t domain.StepType) (templateResponse, bool) {
	tmpl, ok := s.Authoring.Template(t)
	if !ok {
		return templateResponse{}, false
	}
	doc, err := tmpl.Document()
	if err != nil {
		s.logger.Error("template render failed", "step_type", t, "error", err)
		return templateResponse{}, false
	}
	sch, _ := schema.For(t)
	return templateResponse{StepTemplate: tmpl, Label: t.Label(), Document: doc, Schema: sch}, true
}

// ListTemplates handles the GET /templates request.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	out := make([]templateResponse, 0)
	for _, t := range s.Authoring.Catalog().Types() {
		if resp, ok := s.template(t); ok {
			out = append(out, resp)
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetTemplate handles the GET /templates/{type} request.
func (s *Server) GetTemplate(w http.ResponseWriter, r *http.Request) {
	var stepType string
	err := runtime.BindStyledParameterWithOptions("simple", "type", chi.URLParam(r, "type"), &stepType,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, ok := s.template(domain.StepType(stepType))
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown step type: "+stepType)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// CheckTemplate handles the POST /guard request.
func (s *Server) CheckTemplate(w http.ResponseWriter, r *http.Request) {
	var body documentRequest
	if !s.decode(w, r, "CheckTemplate", &body) || !s.sanitize(w, "CheckTemplate", &body.Data) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{
		"is_template":  s.Authoring.IsTemplate(body.Data),
		"overwritable": s.Authoring.Overwritable(body.Data),
	})
}

// FormatDocument handles the POST /format request.
// A document that does not parse is returned unchanged with status 422.
func (s *Server) FormatDocument(w http.ResponseWriter, r *http.Request) {
	var body documentRequest
	if !s.decode(w, r, "FormatDocument", &body) || !s.sanitize(w, "FormatDocument", &body.Data) {
		return
	}

	rec := &notify.Recorder{}
	f := memory.NewForm(map[string]string{domain.FieldData: body.Data})
	err := s.Authoring.Notifying(rec).FormatField(f, domain.FieldData)

	data, _ := f.Value(domain.FieldData)
	resp := formatResponse{Data: data, Notifications: rec.Notifications()}
	if err != nil {
		resp.Error = err.Error()
		var perr *domain.ParseError
		if errors.As(err, &perr) {
			resp.Error = perr.Msg
			resp.Line, resp.Column, resp.Offset = perr.Line, perr.Column, perr.Offset
		}
		s.logger.Warn("FormatDocument: document does not parse", "error", err)
		s.writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ValidateDocument handles the POST /validate request.
func (s *Server) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	var body documentRequest
	if !s.decode(w, r, "ValidateDocument", &body) {
		return
	}
	v := s.Authoring.Validate(body.Data)
	s.writeJSON(w, http.StatusOK, map[string]string{
		"validity":  v.String(),
		"indicator": v.Indicator(),
	})
}

// NextOrder handles the GET /orders/next request.
func (s *Server) NextOrder(w http.ResponseWriter, r *http.Request) {
	var scenarioID string
	if err := runtime.BindQueryParameter("form", true, true, "scenario_id", r.URL.Query(), &scenarioID); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"scenario_id": scenarioID,
		"order":       s.Authoring.NextOrder(r.Context(), scenarioID),
	})
}

// SelectStepType handles the POST /forms/step-type request.
func (s *Server) SelectStepType(w http.ResponseWriter, r *http.Request) {
	var body formRequest
	if !s.decode(w, r, "SelectStepType", &body) {
		return
	}
	if data, ok := body.Fields[domain.FieldData]; ok {
		if !s.sanitize(w, "SelectStepType", &data) {
			return
		}
		body.Fields[domain.FieldData] = data
	}

	rec := &notify.Recorder{}
	f := memory.NewForm(body.Fields)
	stepType := domain.StepType(body.StepType)
	changed := s.Authoring.Notifying(rec).SelectStepType(f, stepType)
	if stepType.Valid() {
		f.SetValue(domain.FieldStepType, body.StepType)
	}

	s.writeJSON(w, http.StatusOK, formResponse{
		Fields:        f.Snapshot(),
		Changed:       changed,
		Notifications: rec.Notifications(),
	})
}

// ScenarioChanged handles the POST /forms/scenario request.
func (s *Server) ScenarioChanged(w http.ResponseWriter, r *http.Request) {
	var body formRequest
	if !s.decode(w, r, "ScenarioChanged", &body) {
		return
	}

	f := memory.NewForm(body.Fields)
	next, changed := s.Authoring.ScenarioChanged(r.Context(), f, body.ScenarioID)
	s.writeJSON(w, http.StatusOK, formResponse{
		Fields:        f.Snapshot(),
		Changed:       changed,
		Order:         next,
		Notifications: []domain.Notification{},
	})
}

// ComposeStep handles the POST /compose request.
func (s *Server) ComposeStep(w http.ResponseWriter, r *http.Request) {
	var body composeRequest
	if !s.decode(w, r, "ComposeStep", &body) {
		return
	}

	stepType, err := domain.ParseStepType(body.StepType)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := body.Name
	if name == "" {
		name = stepType.Label()
		if p, ok := composer.PresetFor(stepType); ok {
			name = p.Name
		}
	}

	var opts []memory.RowOption
	if len(body.RowFields) > 0 {
		opts = append(opts, memory.WithRowFields(body.RowFields...))
	}
	if body.CanAddRow != nil && !*body.CanAddRow {
		opts = append(opts, memory.WithoutAddControl())
	}
	coll := memory.NewRowCollection(body.Rows, opts...)

	rec := &notify.Recorder{}
	row, err := s.Authoring.Notifying(rec).Compose(r.Context(), coll, stepType, name)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		s.logger.Error("ComposeStep failed", "error", err)
		return
	}

	s.writeJSON(w, http.StatusOK, composeResponse{
		Rows:          coll.Snapshot(),
		Added:         row != nil,
		Notifications: rec.Notifications(),
	})
}

// CleanStep handles the POST /steps/clean request.
func (s *Server) CleanStep(w http.ResponseWriter, r *http.Request) {
	var body cleanRequest
	if !s.decode(w, r, "CleanStep", &body) || !s.sanitize(w, "CleanStep", &body.Data) {
		return
	}
	stepType, err := domain.ParseStepType(body.StepType)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := s.Authoring.CleanStep(r.Context(), stepType, body.Data, body.ScenarioID, body.StepID, body.Order)
	if err != nil {
		errs := schema.ValidationErrors(err)
		if errs == nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			s.logger.Error("CleanStep failed", "error", err)
			return
		}
		out := make([]fieldError, 0, len(errs))
		for _, e := range errs {
			var verr *schema.ValidationError
			if errors.As(e, &verr) {
				out = append(out, fieldError{Field: verr.Key, Reason: verr.Reason})
			}
		}
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error(), "errors": out})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": data})
}
