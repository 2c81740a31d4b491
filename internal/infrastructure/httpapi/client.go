// Package httpapi реализует клиент REST-бэкенда с результатами обходов.
package httpapi

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
)

// Client ходит в бэкенд по JSON поверх HTTP.
type Client struct {
	http *resty.Client
	log  logrus.FieldLogger
}

// New создаёт клиента для baseURL (например http://localhost:5000).
func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetLogger(log)

	return &Client{http: r, log: log}
}

// Project возвращает карточку проекта и список обходов.
func (c *Client) Project(ctx context.Context, projectID int64) (*entity.ProjectOverview, error) {
	body, err := c.do(ctx, resty.MethodGet, "/api/project/{id}", projectID)
	if err != nil {
		return nil, err
	}
	return decodeProject(body)
}

// Results возвращает записи дефектов обхода.
func (c *Client) Results(ctx context.Context, inspectionID int64) (*entity.InspectionResults, error) {
	body, err := c.do(ctx, resty.MethodGet, "/api/inspection/{id}/results", inspectionID)
	if err != nil {
		return nil, err
	}
	return decodeResults(body)
}

// StartDetection запускает детекцию; сервер отвечает, когда она закончилась.
func (c *Client) StartDetection(ctx context.Context, inspectionID int64) error {
	body, err := c.do(ctx, resty.MethodPost, "/api/start-detection/{id}", inspectionID)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(body)
	return err
}

// Image скачивает снимок. Имя экранируется как компонент пути.
func (c *Client) Image(ctx context.Context, name, cacheBust string) ([]byte, error) {
	if name == "" {
		return nil, entity.ErrImageNotFound
	}

	req := c.http.R().
		SetContext(ctx).
		SetPathParam("name", name)
	if cacheBust != "" {
		req.SetQueryParam("t", cacheBust)
	}

	resp, err := req.Get("/api/image/{name}")
	if err != nil {
		return nil, &entity.TransportError{Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &entity.TransportError{Status: resp.StatusCode(), Text: strings.TrimSpace(resp.String())}
	}
	if len(resp.Body()) == 0 {
		return nil, &entity.TransportError{Status: resp.StatusCode(), Text: "empty body"}
	}

	return resp.Body(), nil
}

func (c *Client) do(ctx context.Context, method, path string, id int64) ([]byte, error) {
	req := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetHeader("Accept", "application/json")
	if method == resty.MethodPost {
		req.SetHeader("Content-Type", "application/json")
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &entity.TransportError{Err: err}
	}

	log := c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   resp.Request.URL,
		"status": resp.StatusCode(),
	})
	if !resp.IsSuccess() {
		log.Warn("backend returned error status")
		return nil, &entity.TransportError{Status: resp.StatusCode(), Text: strings.TrimSpace(resp.String())}
	}
	log.Debug("backend request done")

	return resp.Body(), nil
}

var _ port.InspectionAPI = (*Client)(nil)
