package forms

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
)

// DateTimeLayout is what datetime-local inputs post.
const DateTimeLayout = "2006-01-02T15:04"

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password,notrim" validate:"required,min=6"`
}

func (f LoginForm) Credentials() model.Credentials {
	return model.Credentials{Email: f.Email, Password: f.Password}
}

type RegisterForm struct {
	Name            string `form:"name" validate:"omitempty,min=2,max=50"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password,notrim" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword,notrim" validate:"required,eqfield=Password"`
}

func (f RegisterForm) Request() model.RegisterRequest {
	return model.RegisterRequest{Name: f.Name, Email: f.Email, Password: f.Password}
}

type ForgotPasswordForm struct {
	Email       string `form:"email" validate:"required,email"`
	NewPassword string `form:"newPassword,notrim" validate:"required,min=6"`
	TotpCode    string `form:"totpCode" validate:"omitempty,numeric,len=6"`
}

func (f ForgotPasswordForm) Request() model.ForgotPasswordRequest {
	req := model.ForgotPasswordRequest{Email: f.Email, NewPassword: f.NewPassword}
	if code, err := strconv.Atoi(f.TotpCode); err == nil {
		req.TotpCode = &code
	}
	return req
}

type CheckoutForm struct {
	ReceiverName    string `form:"receiverName" validate:"required,max=50"`
	ReceiverPhone   string `form:"receiverPhone" validate:"required,mobile"`
	ReceiverAddress string `form:"receiverAddress" validate:"required,max=200"`
	Remark          string `form:"remark" validate:"max=500"`
}

func (f CheckoutForm) Request() model.CreateOrderRequest {
	return model.CreateOrderRequest{
		ReceiverName:    f.ReceiverName,
		ReceiverPhone:   NormalizePhone(f.ReceiverPhone),
		ReceiverAddress: f.ReceiverAddress,
		Remark:          f.Remark,
	}
}

type CreateUserForm struct {
	Name            string `form:"name" validate:"required,min=2,max=50"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password,notrim" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword,notrim" validate:"required,eqfield=Password"`
	Role            string `form:"role" validate:"required,oneof=ADMIN USER"`
	Enabled         bool   `form:"enabled"`
}

func (f CreateUserForm) Request() model.CreateUserRequest {
	return model.CreateUserRequest{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
		Enabled:  f.Enabled,
	}
}

// IsAdmin reports whether the form creates an administrator.
func (f CreateUserForm) IsAdmin() bool { return f.Role == model.RoleAdmin }

type ProductForm struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=2000"`
	Price       string `form:"price" validate:"required,money"`
	Stock       string `form:"stock" validate:"required,count"`
	Status      string `form:"status" validate:"required,oneof=OPEN CLOSED HIDDEN"`
	StartAt     string `form:"startAt" validate:"omitempty,datetime=2006-01-02T15:04"`
	EndAt       string `form:"endAt" validate:"omitempty,datetime=2006-01-02T15:04"`
}

// ProductFormFrom fills the edit form from an existing product.
func ProductFormFrom(p model.Product) ProductForm {
	f := ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       strconv.Itoa(p.Stock),
		Status:      string(p.Status),
	}
	if p.StartAt != nil {
		f.StartAt = p.StartAt.Format(DateTimeLayout)
	}
	if p.EndAt != nil {
		f.EndAt = p.EndAt.Format(DateTimeLayout)
	}
	return f
}

// Request converts a validated form. Call it only after Validate passed.
func (f ProductForm) Request() model.ProductRequest {
	req := model.ProductRequest{
		Name:        f.Name,
		Description: f.Description,
		Price:       decimal.RequireFromString(f.Price),
		Status:      model.ProductStatus(f.Status),
	}
	req.Stock, _ = strconv.Atoi(f.Stock)
	req.StartAt = parseLocal(f.StartAt)
	req.EndAt = parseLocal(f.EndAt)
	return req
}

func parseLocal(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}
