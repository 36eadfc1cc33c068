package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dverbis/itemkeeper/internal/common"
	"github.com/dverbis/itemkeeper/internal/server/models"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type createItemRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type updateItemRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "message": "itemkeeper API"})
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return detailJSON(c, http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	user, err := s.users.Register(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorEmailTaken):
			return detailJSON(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, common.ErrorUsernameTaken):
			return detailJSON(c, http.StatusBadRequest, "Username already taken")
		default:
			s.logger.Error(ctx, "register failed", "err", err)
			return detailJSON(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return detailJSON(c, http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	token, user, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return detailJSON(c, http.StatusUnauthorized, "Incorrect username or password")
		}
		s.logger.Error(ctx, "login failed", "err", err)
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) listItems(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := s.items.List(ctx, currentUser(c).ID)
	if err != nil {
		s.logger.Error(ctx, "list items failed", "err", err)
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, paginate(list, c.QueryParam("skip"), c.QueryParam("limit")))
}

// paginate applies the optional skip/limit query parameters. Values that
// are absent or unparsable fall back to the whole list / no offset.
func paginate(list []models.Item, skipParam, limitParam string) []models.Item {
	skip := 0
	if n, err := strconv.Atoi(skipParam); err == nil && n > 0 {
		skip = n
	}
	if skip >= len(list) {
		return []models.Item{}
	}
	list = list[skip:]

	if n, err := strconv.Atoi(limitParam); err == nil && n >= 0 && n < len(list) {
		list = list[:n]
	}
	return list
}

func (s *Server) createItem(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return detailJSON(c, http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	item, err := s.items.Create(ctx, currentUser(c).ID, req.Title, req.Description)
	if err != nil {
		s.logger.Error(ctx, "create item failed", "err", err)
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusCreated, item)
}

func (s *Server) getItem(c echo.Context) error {
	ctx := c.Request().Context()
	item, err := s.items.Get(ctx, c.Param("id"), currentUser(c).ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return detailJSON(c, http.StatusNotFound, "Item not found")
		}
		s.logger.Error(ctx, "get item failed", "err", err)
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) updateItem(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return detailJSON(c, http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	item, err := s.items.Update(ctx, c.Param("id"), currentUser(c).ID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return detailJSON(c, http.StatusNotFound, "Item not found")
		}
		s.logger.Error(ctx, "update item failed", "err", err)
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) deleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	if err := s.items.Delete(ctx, c.Param("id"), currentUser(c).ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return detailJSON(c, http.StatusNotFound, "Item not found")
		}
		s.logger.Error(ctx, "delete item failed", "err", err)
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}
