package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"accessToken"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// taskResponse never carries the owner.
type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func newTaskResponse(t *models.Task) taskResponse {
	return taskResponse{ID: t.ID, Title: t.Title, Description: t.Description, Status: string(t.Status)}
}

func authUser(c echo.Context) (*models.User, bool) {
	return auth.UserFromContext(c.Request().Context())
}

func currentUser(c echo.Context) (*models.User, error) {
	user, ok := authUser(c)
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

func bindJSON(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return common.FieldError("body", "must be a valid JSON object")
	}
	return nil
}

func (s *HTTPServer) healthz(c echo.Context) error {
	if err := s.pinger.Ping(c.Request().Context()); err != nil {
		s.logger.Warn(c.Request().Context(), "health check failed", "error", err)
		return common.ErrorUnavailable
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) signUp(c echo.Context) error {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := s.users.SignUp(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (s *HTTPServer) signIn(c echo.Context) error {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, err := s.users.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signInResponse{AccessToken: token})
}

func (s *HTTPServer) listTasks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := s.tasks.List(c.Request().Context(), user, c.QueryParam("status"), c.QueryParam("search"))
	if err != nil {
		return err
	}

	resp := make([]taskResponse, 0, len(list))
	for i := range list {
		resp = append(resp, newTaskResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) getTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	task, err := s.tasks.GetByID(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *HTTPServer) createTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	task, err := s.tasks.Create(c.Request().Context(), user, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (s *HTTPServer) deleteTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) updateTaskStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	task, err := s.tasks.UpdateStatus(c.Request().Context(), user, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}
