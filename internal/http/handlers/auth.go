package handlers

import (
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

type AuthHandler struct{ *Base }

func NewAuthHandler(b *Base) *AuthHandler { return &AuthHandler{Base: b} }

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	if a.IsAuthenticated() {
		h.redirect(w, r, "/")
		return
	}
	v := h.shopView(r, a, "Log in")
	v.Form = forms.LoginForm{}
	h.render(w, http.StatusOK, "login", v)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	var f forms.LoginForm
	if err := r.ParseForm(); err == nil {
		forms.Decode(r.PostForm, &f)
	}
	v := h.shopView(r, a, "Log in")
	v.Form = forms.LoginForm{Email: f.Email}

	if errs := forms.Validate(f); errs.Any() {
		v.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, "login", v)
		return
	}
	if _, err := a.Login(r.Context(), f.Credentials()); err != nil {
		msg := clients.Message(err)
		// The backend answers bad credentials and disabled accounts alike;
		// check-login tells them apart.
		if ok, cerr := h.Auth.CheckLogin(r.Context(), a.Local(), f.Email); cerr == nil && !ok {
			msg = "This account is disabled or does not exist"
		}
		v.Errors = forms.Errors{"": msg}
		h.render(w, http.StatusUnauthorized, "login", v)
		return
	}
	h.flash(r, FlashSuccess, "Welcome back")
	h.redirect(w, r, "/")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.storefront(r).Logout(r.Context())
	h.flash(r, FlashInfo, "You have been logged out")
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	v := h.shopView(r, h.storefront(r), "Create account")
	v.Form = forms.RegisterForm{}
	h.render(w, http.StatusOK, "register", v)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	var f forms.RegisterForm
	if err := r.ParseForm(); err == nil {
		forms.Decode(r.PostForm, &f)
	}
	v := h.shopView(r, a, "Create account")
	v.Form = forms.RegisterForm{Name: f.Name, Email: f.Email}

	if errs := forms.Validate(f); errs.Any() {
		v.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, "register", v)
		return
	}
	if _, err := h.Auth.Register(r.Context(), a.Local(), f.Request()); err != nil {
		v.Errors = forms.Errors{"": clients.Message(err)}
		h.render(w, http.StatusBadRequest, "register", v)
		return
	}
	h.flash(r, FlashSuccess, "Account created, you can log in now")
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	v := h.shopView(r, h.storefront(r), "Reset password")
	v.Form = forms.ForgotPasswordForm{}
	h.render(w, http.StatusOK, "forgot_password", v)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	var f forms.ForgotPasswordForm
	if err := r.ParseForm(); err == nil {
		forms.Decode(r.PostForm, &f)
	}
	v := h.shopView(r, a, "Reset password")
	v.Form = forms.ForgotPasswordForm{Email: f.Email}

	if errs := forms.Validate(f); errs.Any() {
		v.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, "forgot_password", v)
		return
	}
	msg, err := h.Auth.ForgotPassword(r.Context(), a.Local(), f.Request())
	if err != nil {
		v.Errors = forms.Errors{"": clients.Message(err)}
		h.render(w, http.StatusBadRequest, "forgot_password", v)
		return
	}
	if msg == "" {
		msg = "Password updated"
	}
	h.flash(r, FlashSuccess, msg)
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	if a.IsAuthenticated() {
		h.redirect(w, r, "/admin/dashboard")
		return
	}
	v := h.adminView(r, a, "Admin log in")
	v.Form = forms.LoginForm{}
	h.render(w, http.StatusOK, "admin_login", v)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	var f forms.LoginForm
	if err := r.ParseForm(); err == nil {
		forms.Decode(r.PostForm, &f)
	}
	v := h.adminView(r, a, "Admin log in")
	v.Form = forms.LoginForm{Email: f.Email}

	if errs := forms.Validate(f); errs.Any() {
		v.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, "admin_login", v)
		return
	}
	if _, err := a.Login(r.Context(), f.Credentials()); err != nil {
		msg := clients.Message(err)
		if errors.Is(err, session.ErrMissingRole) {
			msg = "This account is not an administrator"
		}
		v.Errors = forms.Errors{"": msg}
		h.render(w, http.StatusUnauthorized, "admin_login", v)
		return
	}
	h.flash(r, FlashSuccess, "Logged in")
	h.redirect(w, r, "/admin/dashboard")
}

func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.adminSession(r).Logout(r.Context())
	h.flash(r, FlashInfo, "You have been logged out")
	h.redirect(w, r, "/admin/login")
}
