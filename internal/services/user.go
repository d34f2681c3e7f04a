package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/models"
)

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user account together with its fitness profile.
// Both rows are written in one transaction: either both exist or neither.
func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ValidationError("username, email and password are required")
	}

	if exists, err := s.UsernameExists(req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, ValidationError("username already exists")
	}

	if exists, err := s.EmailExists(req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, ValidationError("email already exists")
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		FitnessGoal: req.FitnessGoal,
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExec(`
		INSERT INTO users (username, email, password_hash, first_name, last_name,
			date_of_birth, fitness_goal, height_cm, weight_kg, created_at, updated_at)
		VALUES (:username, :email, :password_hash, :first_name, :last_name,
			:date_of_birth, :fitness_goal, :height_cm, :weight_kg, :created_at, :updated_at)
	`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}
	user.ID = int(id)

	if _, err := tx.Exec(`INSERT INTO profiles (user_id) VALUES (?)`, user.ID); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	user.Password = ""
	return user, nil
}

// Authenticate validates login credentials and returns the user
func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ValidationError("username and password required")
	}

	user, err := s.getUserWithPassword(req.Username)
	if err != nil {
		return nil, AuthError("invalid credentials")
	}

	if !user.CheckPassword(req.Password) {
		return nil, AuthError("invalid credentials")
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID
func (s *UserService) GetUserByID(id int) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, first_name, last_name, date_of_birth,
			fitness_goal, height_cm, weight_kg, created_at, updated_at
		FROM users WHERE id = ?`

	err := s.db.Get(&user, query, id)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("user not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserDetail returns a user together with their profile
func (s *UserService) GetUserDetail(id int) (*models.UserDetail, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}

	return &models.UserDetail{User: *user, Profile: profile}, nil
}

func (s *UserService) getUserWithPassword(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, first_name, last_name,
			date_of_birth, fitness_goal, height_cm, weight_kg, created_at, updated_at
		FROM users WHERE username = ?`

	err := s.db.Get(&user, query, username)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("user not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ListUsers returns every registered user
func (s *UserService) ListUsers() ([]models.User, error) {
	users := []models.User{}
	query := `SELECT id, username, email, first_name, last_name, date_of_birth,
			fitness_goal, height_cm, weight_kg, created_at, updated_at
		FROM users ORDER BY id`

	if err := s.db.Select(&users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UsernameExists checks if a username is already taken
func (s *UserService) UsernameExists(username string) (bool, error) {
	var count int
	err := s.db.Get(&count, `SELECT COUNT(*) FROM users WHERE username = ?`, username)
	return count > 0, err
}

// EmailExists checks if an email is already registered
func (s *UserService) EmailExists(email string) (bool, error) {
	var count int
	err := s.db.Get(&count, `SELECT COUNT(*) FROM users WHERE email = ?`, email)
	return count > 0, err
}

// UpdateUser applies a partial update to the user's account fields
func (s *UserService) UpdateUser(userID int, req *models.UserUpdateRequest) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		var count int
		if err := s.db.Get(&count, `SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`, *req.Email, userID); err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ValidationError("email already exists")
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.FitnessGoal != nil {
		user.FitnessGoal = *req.FitnessGoal
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}
	user.UpdatedAt = time.Now()

	_, err = s.db.NamedExec(`
		UPDATE users SET email = :email, first_name = :first_name, last_name = :last_name,
			date_of_birth = :date_of_birth, fitness_goal = :fitness_goal,
			height_cm = :height_cm, weight_kg = :weight_kg, updated_at = :updated_at
		WHERE id = :id
	`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetProfile returns the user's fitness profile. Profiles are provisioned at
// registration, so a missing row means the user itself is gone.
func (s *UserService) GetProfile(userID int) (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT user_id, bio, avatar, fitness_level, preferred_activities, points
		FROM profiles WHERE user_id = ?`

	err := s.db.Get(&profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("profile not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpdateProfile applies a partial update to the fitness profile
func (s *UserService) UpdateProfile(userID int, req *models.ProfileUpdateRequest) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Avatar != nil {
		profile.Avatar = *req.Avatar
	}
	if req.FitnessLevel != nil {
		switch *req.FitnessLevel {
		case "beginner", "intermediate", "advanced":
			profile.FitnessLevel = *req.FitnessLevel
		default:
			return nil, ValidationError("fitness_level must be beginner, intermediate or advanced")
		}
	}
	if req.PreferredActivities != nil {
		profile.PreferredActivities = *req.PreferredActivities
	}
	if req.Points != nil {
		if *req.Points < 0 {
			return nil, ValidationError("points cannot be negative")
		}
		profile.Points = *req.Points
	}

	_, err = s.db.NamedExec(`
		UPDATE profiles SET bio = :bio, avatar = :avatar, fitness_level = :fitness_level,
			preferred_activities = :preferred_activities, points = :points
		WHERE user_id = :user_id
	`, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
