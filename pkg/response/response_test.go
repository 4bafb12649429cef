package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router := gin.New()
	router.GET("/", handler)
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSuccess(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Success(c, gin.H{"value": 1})
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Code != 0 {
		t.Errorf("code = %d, expected 0", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("message = %q, expected ok", resp.Message)
	}
	if resp.Data == nil {
		t.Error("data should be present")
	}
}

func TestCreated(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Created(c, gin.H{"id": 5})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, expected 201", w.Code)
	}
}

func TestConvenienceErrors(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(*gin.Context, string)
		status int
	}{
		{"BadRequest", BadRequest, http.StatusBadRequest},
		{"Unauthorized", Unauthorized, http.StatusUnauthorized},
		{"Forbidden", Forbidden, http.StatusForbidden},
		{"NotFound", NotFound, http.StatusNotFound},
		{"ServerError", ServerError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := perform(func(c *gin.Context) {
			tc.fn(c, "boom")
		})
		if w.Code != tc.status {
			t.Errorf("%s: status = %d, expected %d", tc.name, w.Code, tc.status)
		}

		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: invalid JSON body: %v", tc.name, err)
		}
		if resp.Code != tc.status {
			t.Errorf("%s: code = %d, expected %d", tc.name, resp.Code, tc.status)
		}
		if resp.Message != "boom" {
			t.Errorf("%s: message = %q", tc.name, resp.Message)
		}
	}
}

func TestError_AppError(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Error(c, NewNotFound("missing thing"))
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", w.Code)
	}
}

func TestError_PlainError(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Error(c, errors.New("unexpected"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", w.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	err := NewConflict("already exists")
	if err.Error() != "already exists" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("HTTPStatus = %d, expected 409", err.HTTPStatus)
	}
}
