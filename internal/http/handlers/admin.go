package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/admin"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

var errUserNotFound = errors.New("user not found")

type AdminHandler struct {
	*Base
	admin *clients.AdminClient
}

func NewAdminHandler(b *Base, a *clients.AdminClient) *AdminHandler {
	return &AdminHandler{Base: b, admin: a}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	stats, err := h.admin.Statistics(r.Context(), a.Local())
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}
	admins, err := h.admin.ListAdmins(r.Context(), a.Local())
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}

	v := h.adminView(r, a, "Dashboard")
	v.Data["stats"] = stats
	v.Data["admins"] = admins
	h.render(w, http.StatusOK, "admin_dashboard", v)
}

// Users lists accounts. filter selects frontend, deleted or by-role views.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	q := r.URL.Query()
	filter := q.Get("filter")

	var (
		users []model.User
		err   error
	)
	switch filter {
	case "frontend":
		users, err = h.admin.ListFrontendUsers(r.Context(), a.Local())
	case "deleted":
		users, err = h.admin.ListDeletedUsers(r.Context(), a.Local())
	case "role":
		users, err = h.admin.ListUsersByRole(r.Context(), a.Local(), q.Get("role"))
	default:
		filter = ""
		users, err = h.admin.ListUsers(r.Context(), a.Local())
	}
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}
	h.renderUsers(w, r, a.User(), "Users", users, filter)
}

func (h *AdminHandler) Admins(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	users, err := h.admin.ListAdmins(r.Context(), a.Local())
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}
	h.renderUsers(w, r, a.User(), "Administrators", users, "admins")
}

func (h *AdminHandler) renderUsers(w http.ResponseWriter, r *http.Request, me *model.User, title string, users []model.User, filter string) {
	v := h.view(r, AreaAdmin, title)
	v.User = me
	v.Data["users"] = users
	v.Data["filter"] = filter
	v.Data["back"] = r.URL.RequestURI()
	h.render(w, http.StatusOK, "admin_users", v)
}

// userAction runs one backend call against the user in the path and
// returns to the listing the form was posted from.
func (h *AdminHandler) userAction(w http.ResponseWriter, r *http.Request, done string, call func(local storage.Local, id int64) error) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaAdmin)
		return
	}
	back := r.FormValue("back")
	if !isLocalPath(back) {
		back = "/admin/users"
	}
	if err := call(h.local(r), id); err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.flash(r, FlashSuccess, done)
	h.redirect(w, r, back)
}

func (h *AdminHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, "User status updated", func(l storage.Local, id int64) error {
		return h.admin.ToggleStatus(r.Context(), l, id)
	})
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, "User deleted", func(l storage.Local, id int64) error {
		return h.admin.DeleteUser(r.Context(), l, id)
	})
}

func (h *AdminHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, "User restored", func(l storage.Local, id int64) error {
		return h.admin.RestoreUser(r.Context(), l, id)
	})
}

func (h *AdminHandler) AddRole(w http.ResponseWriter, r *http.Request) {
	role := r.FormValue("role")
	h.userAction(w, r, "Role added", func(l storage.Local, id int64) error {
		u, err := h.findUser(r, l, id)
		if err != nil {
			return err
		}
		if err := admin.CanAddRole(*u, role); err != nil {
			return err
		}
		return h.admin.AddRole(r.Context(), l, id, role)
	})
}

// RemoveRole refuses to strip a user's last role before calling the
// backend.
func (h *AdminHandler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	role := r.FormValue("role")
	h.userAction(w, r, "Role removed", func(l storage.Local, id int64) error {
		u, err := h.findUser(r, l, id)
		if err != nil {
			return err
		}
		if err := admin.CanRemoveRole(*u, role); err != nil {
			return err
		}
		return h.admin.RemoveRole(r.Context(), l, id, role)
	})
}

// findUser looks the user up in the active list, then among the deleted
// ones, which the active list leaves out.
func (h *AdminHandler) findUser(r *http.Request, l storage.Local, id int64) (*model.User, error) {
	for _, list := range []func(context.Context, storage.Local) ([]model.User, error){
		h.admin.ListUsers,
		h.admin.ListDeletedUsers,
	} {
		users, err := list(r.Context(), l)
		if err != nil {
			return nil, err
		}
		for i := range users {
			if users[i].ID == id {
				return &users[i], nil
			}
		}
	}
	return nil, errUserNotFound
}

func (h *AdminHandler) CreateUserPage(w http.ResponseWriter, r *http.Request) {
	v := h.adminView(r, h.adminSession(r), "Create user")
	v.Form = forms.CreateUserForm{Role: model.RoleUser, Enabled: true}
	h.render(w, http.StatusOK, "admin_create_user", v)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	var f forms.CreateUserForm
	if err := r.ParseForm(); err == nil {
		forms.Decode(r.PostForm, &f)
	}
	render := func(status int, errs forms.Errors) {
		v := h.adminView(r, a, "Create user")
		v.Form = forms.CreateUserForm{Name: f.Name, Email: f.Email, Role: f.Role, Enabled: f.Enabled}
		v.Errors = errs
		h.render(w, status, "admin_create_user", v)
	}
	if errs := forms.Validate(f); errs.Any() {
		render(http.StatusUnprocessableEntity, errs)
		return
	}

	create := h.admin.CreateUser
	if f.IsAdmin() {
		create = h.admin.CreateAdmin
	}
	if _, err := create(r.Context(), a.Local(), f.Request()); err != nil {
		if clients.SessionCleared(err) {
			h.fail(w, r, err, "")
			return
		}
		render(http.StatusBadRequest, forms.Errors{"": clients.Message(err)})
		return
	}
	h.flash(r, FlashSuccess, "User "+f.Email+" created")
	if f.IsAdmin() {
		h.redirect(w, r, "/admin/admins")
		return
	}
	h.redirect(w, r, "/admin/users")
}
