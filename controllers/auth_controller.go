package controllers

import (
	"sklad-backend/models"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController контроллер для аутентификации
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController создает новый экземпляр AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// RegisterRequest структура запроса регистрации
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest структура запроса входа
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse структура ответа аутентификации
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user,omitempty"`
}

// Register обрабатывает регистрацию пользователя
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest

	// Парсим JSON
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Неверный формат данных",
		})
	}

	// Валидация
	if err := ac.validateRegisterRequest(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	// Проверяем, существует ли пользователь
	var existingUser models.User
	if err := ac.DB.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		return c.Status(409).JSON(AuthResponse{
			Success: false,
			Message: "Пользователь с таким именем уже существует",
		})
	}

	// Хэшируем пароль
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при создании пользователя",
		})
	}

	// Создаем пользователя
	user := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при создании пользователя",
		})
	}

	// Генерируем JWT токен
	token, err := utils.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при создании токена",
		})
	}

	return c.Status(201).JSON(authResponseFor(&user, token, "Пользователь успешно зарегистрирован"))
}

// Login обрабатывает вход пользователя
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest

	// Парсим JSON
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Неверный формат данных",
		})
	}

	// Валидация
	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Имя пользователя и пароль обязательны",
		})
	}

	// Ищем пользователя
	var user models.User
	if err := ac.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Неверное имя пользователя или пароль",
		})
	}

	// Проверяем пароль
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Неверное имя пользователя или пароль",
		})
	}

	// Проверяем активность пользователя
	if !user.IsActive {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Аккаунт заблокирован",
		})
	}

	// Генерируем JWT токен
	token, err := utils.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при создании токена",
		})
	}

	return c.JSON(authResponseFor(&user, token, "Успешный вход в систему"))
}

// Вспомогательные методы

func authResponseFor(user *models.User, token, message string) AuthResponse {
	resp := AuthResponse{
		Success: true,
		Message: message,
		Token:   token,
	}
	resp.User.ID = user.ID
	resp.User.Username = user.Username
	resp.User.Role = user.Role
	return resp
}

func (ac *AuthController) validateRegisterRequest(req *RegisterRequest) error {
	if req.Username == "" {
		return fiber.NewError(400, "Имя пользователя обязательно")
	}
	if len(req.Username) < 3 || len(req.Username) > 50 {
		return fiber.NewError(400, "Имя пользователя должно содержать от 3 до 50 символов")
	}
	if len(req.Password) < 6 {
		return fiber.NewError(400, "Пароль должен содержать минимум 6 символов")
	}
	if req.Password != req.ConfirmPassword {
		return fiber.NewError(400, "Пароли не совпадают")
	}
	return nil
}
