package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baokaotong/baokao-backend/internal/enrich"
	"github.com/baokaotong/baokao-backend/internal/model"
	"github.com/baokaotong/baokao-backend/internal/validator"
)

type stubDetailService struct {
	detail *model.MajorDetail
	err    error
	answer string
}

func (s *stubDetailService) GetMajorDetail(ctx context.Context, code string) (*model.MajorDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubDetailService) AnswerQuestion(ctx context.Context, majorName, question string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func setupRouter(svc *stubDetailService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	h := NewMajorHandler(svc)
	r := gin.New()
	r.GET("/catalog/major/:code", h.GetDetail)
	r.POST("/catalog/major/qa", h.AskQuestion)
	return r
}

func TestGetDetailOK(t *testing.T) {
	detail := &model.MajorDetail{
		Code:     "010101",
		Name:     "哲学",
		Category: "哲学",
		Subject:  "哲学类",
		Courses:  []string{"马克思主义哲学"},
		QA:       []model.QAPair{{Question: "问", Answer: "答"}},
	}
	r := setupRouter(&stubDetailService{detail: detail})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/major/010101", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.MajorDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "010101", got.Code)
	assert.Equal(t, "哲学", got.Name)
}

func TestGetDetailNotFound(t *testing.T) {
	r := setupRouter(&stubDetailService{err: enrich.ErrNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/major/999999", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestGetDetailGenerationFailure(t *testing.T) {
	r := setupRouter(&stubDetailService{err: errors.New("generate major detail after 3 attempts: boom")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/major/010101", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
	// Internal detail never leaks to clients.
	assert.NotContains(t, body["error"], "boom")
}

func TestAskQuestionOK(t *testing.T) {
	r := setupRouter(&stubDetailService{answer: "前景不错。"})

	payload := `{"major_name": "哲学", "question": "就业怎么样？"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/major/qa", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "前景不错。", body["answer"])
	assert.Equal(t, "哲学", body["major"])
	assert.Equal(t, "就业怎么样？", body["question"])
}

func TestAskQuestionMissingFields(t *testing.T) {
	r := setupRouter(&stubDetailService{answer: "ignored"})

	for _, payload := range []string{
		`{"question": "就业怎么样？"}`,
		`{"major_name": "哲学"}`,
		`{}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/catalog/major/qa", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "payload: %s", payload)
	}
}

func TestAskQuestionModelError(t *testing.T) {
	r := setupRouter(&stubDetailService{err: errors.New("upstream timeout")})

	payload := `{"major_name": "哲学", "question": "就业怎么样？"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/major/qa", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
