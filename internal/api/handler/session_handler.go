package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eggrusher04/HealthyAuraProject/internal/api/metrics"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/core/ports"
)

type SessionHandler struct {
	session ports.SessionService
}

func NewSessionHandler(session ports.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type preferencesRequest struct {
	Preferences string `json:"preferences" validate:"max=2000"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login signs a user in.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  domain.UserProfile
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      423   {object}  map[string]string
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.session.SignIn(c.Request().Context(), req.Username, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, publicProfile(user))
}

// SignUp registers a new account.
//
// @Summary      Sign up
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  domain.AuthResult
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /session/signup [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.session.SignUp(c.Request().Context(), domain.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	out := *res
	out.Token = ""
	return c.JSON(http.StatusCreated, out)
}

// Logout ends the session. It always succeeds.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.SignOut(c.Request().Context())
	metrics.SignOutsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Signed out."})
}

// Me returns the signed-in user.
//
// @Summary      Current user
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.UserProfile
// @Failure      401  {object}  map[string]string
// @Router       /session/me [get]
func (h *SessionHandler) Me(c echo.Context) error {
	user := h.session.CurrentUser()
	if user == nil {
		return domain.NewError(domain.ErrUnauthorized, "", nil)
	}
	return c.JSON(http.StatusOK, publicProfile(user))
}

// UpdatePreferences stores dietary preferences.
//
// @Summary      Update preferences
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      preferencesRequest  true  "Preferences"
// @Success      200   {object}  domain.UserProfile
// @Failure      401   {object}  map[string]string
// @Router       /session/me/preferences [put]
func (h *SessionHandler) UpdatePreferences(c echo.Context) error {
	var req preferencesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.session.UpdatePreferences(c.Request().Context(), req.Preferences)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicProfile(user))
}

// UpdateEmail changes the account email.
//
// @Summary      Update email
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "New email"
// @Success      200   {object}  domain.UserProfile
// @Failure      422   {object}  map[string]string
// @Router       /session/me/email [put]
func (h *SessionHandler) UpdateEmail(c echo.Context) error {
	var req emailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.session.UpdateEmail(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicProfile(user))
}

// UpdatePassword changes the account password.
//
// @Summary      Update password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      passwordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  map[string]string
// @Router       /session/me/password [put]
func (h *SessionHandler) UpdatePassword(c echo.Context) error {
	var req passwordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.session.UpdatePassword(c.Request().Context(), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated."})
}

// publicProfile strips the bearer token before a profile leaves the process.
func publicProfile(p *domain.UserProfile) *domain.UserProfile {
	out := p.Clone()
	if out != nil {
		out.Token = ""
	}
	return out
}
