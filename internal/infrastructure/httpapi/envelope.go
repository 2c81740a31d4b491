package httpapi

import (
	"bytes"
	"encoding/json"

	"inspection-viewer/internal/domain/entity"
)

// envelope — общий конверт ответов бэкенда {success, message, data}.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope отличает битую форму ответа (ShapeError) от
// прикладного отказа success:false (APIError).
func decodeEnvelope(body []byte) (*envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &entity.ShapeError{Reason: "response is not an object"}
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &entity.ShapeError{Reason: "malformed json: " + err.Error()}
	}
	if env.Success == nil {
		return nil, &entity.ShapeError{Reason: "missing success flag"}
	}
	if !*env.Success {
		return nil, &entity.APIError{Message: env.Message}
	}

	return &env, nil
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

type resultsData struct {
	Records          json.RawMessage `json:"records"`
	TotalImages      int             `json:"total_images"`
	DefectImages     int             `json:"defect_images"`
	TotalDefects     int             `json:"total_defects"`
	InspectionName   string          `json:"inspection_name"`
	ProjectShortName string          `json:"project_short_name"`
}

// decodeResults разбирает ответ /api/inspection/{id}/results.
func decodeResults(body []byte) (*entity.InspectionResults, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	if !isObject(env.Data) {
		return nil, &entity.ShapeError{Reason: "missing data object"}
	}

	var data resultsData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &entity.ShapeError{Reason: "malformed data: " + err.Error()}
	}
	if !isArray(data.Records) {
		return nil, &entity.ShapeError{Reason: "missing records array"}
	}

	var records []entity.DefectRecord
	if err := json.Unmarshal(data.Records, &records); err != nil {
		return nil, &entity.ShapeError{Reason: "malformed records: " + err.Error()}
	}

	return &entity.InspectionResults{
		Records: records,
		Summary: entity.InspectionSummary{
			TotalImages:  data.TotalImages,
			DefectImages: data.DefectImages,
			TotalDefects: data.TotalDefects,
		},
		InspectionName:   data.InspectionName,
		ProjectShortName: data.ProjectShortName,
	}, nil
}

// decodeProject разбирает ответ /api/project/{id}.
func decodeProject(body []byte) (*entity.ProjectOverview, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	if !isObject(env.Data) {
		return nil, &entity.ShapeError{Reason: "missing data object"}
	}

	var overview entity.ProjectOverview
	if err := json.Unmarshal(env.Data, &overview); err != nil {
		return nil, &entity.ShapeError{Reason: "malformed project: " + err.Error()}
	}

	return &overview, nil
}
