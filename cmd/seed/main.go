package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	fullname string
	email    string
}

var seedUsers = []seedUser{
	{"Alice Example", "alice@example.com"},
	{"Bob Example", "bob@example.com"},
	{"Carol Example", "carol@example.com"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Board{}, &model.Task{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	users, created, err := seedDemoUsers(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Users ready: %d (%d newly created)", len(users), created)

	board, err := seedDemoBoard(ctx, gormDB, boardRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed board: %v", err)
	}

	if err := seedDemoTasks(ctx, gormDB, taskRepo, commentRepo, board, users); err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Demo users log in with password %q", seedPassword)
}

// seedDemoUsers creates the demo accounts, skipping ones that already exist.
func seedDemoUsers(ctx context.Context, repo repository.UserRepository) ([]model.User, int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		return nil, 0, err
	}

	users := make([]model.User, 0, len(seedUsers))
	created := 0
	for _, su := range seedUsers {
		existing, err := repo.FindByEmail(ctx, su.email)
		if err == nil {
			users = append(users, *existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, created, err
		}

		user := model.User{
			Fullname:     su.fullname,
			Email:        su.email,
			PasswordHash: string(hash),
		}
		if err := repo.Create(ctx, &user); err != nil {
			return nil, created, err
		}
		users = append(users, user)
		created++
	}
	return users, created, nil
}

// seedDemoBoard creates one board owned by the first user with the others as
// members, if it does not already exist.
func seedDemoBoard(ctx context.Context, gormDB *gorm.DB, repo repository.BoardRepository, users []model.User) (*model.Board, error) {
	var existing model.Board
	err := gormDB.WithContext(ctx).
		Where("title = ? AND owner_id = ?", "Demo Board", users[0].ID).
		Preload("Members").
		First(&existing).Error
	if err == nil {
		log.Println("Demo board already present, skipping")
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	board := model.Board{
		Title:   "Demo Board",
		OwnerID: users[0].ID,
		Members: users[1:],
	}
	if err := repo.Create(ctx, &board); err != nil {
		return nil, err
	}
	log.Println("Demo board created")
	return &board, nil
}

// seedDemoTasks populates the board with a couple of tasks and comments.
func seedDemoTasks(ctx context.Context, gormDB *gorm.DB, taskRepo repository.TaskRepository, commentRepo repository.CommentRepository, board *model.Board, users []model.User) error {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.Task{}).Where("board_id = ?", board.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Demo tasks already present, skipping")
		return nil
	}

	assignee := users[1].ID
	reviewer := users[2].ID
	tasks := []model.Task{
		{
			BoardID:     board.ID,
			Title:       "Set up the project",
			Description: "Initial scaffolding and CI.",
			Status:      "to-do",
			Priority:    "high",
			AssigneeID:  &assignee,
			ReviewerID:  &reviewer,
			OwnerID:     users[0].ID,
			DueDate:     time.Now().AddDate(0, 0, 7),
		},
		{
			BoardID:     board.ID,
			Title:       "Write the onboarding guide",
			Description: "Short walkthrough for new members.",
			Status:      "in-progress",
			Priority:    "medium",
			AssigneeID:  &assignee,
			OwnerID:     users[0].ID,
			DueDate:     time.Now().AddDate(0, 0, 14),
		},
	}

	for i := range tasks {
		if err := taskRepo.Create(ctx, &tasks[i]); err != nil {
			return err
		}
	}

	comment := model.Comment{
		TaskID:   tasks[0].ID,
		AuthorID: users[1].ID,
		Content:  "Starting on this today.",
	}
	if err := commentRepo.Create(ctx, &comment); err != nil {
		return err
	}

	log.Printf("Demo tasks created: %d", len(tasks))
	return nil
}
