package bootstrap

import (
	"github.com/yuqie6/onepercent/internal/eventbus"
	"github.com/yuqie6/onepercent/internal/pkg/config"
	"github.com/yuqie6/onepercent/internal/repository"
	"github.com/yuqie6/onepercent/internal/service"
)

// Core 持有跨二进制共享的核心依赖
type Core struct {
	Cfg *config.Config
	DB  *repository.Database
	Hub *eventbus.Hub

	Repos struct {
		User     *repository.UserRepository
		Login    *repository.LoginRepository
		Score    *repository.ScoreRepository
		Reading  *repository.ReadingRepository
		Question *repository.QuestionRepository
	}

	Services struct {
		Progress *service.ProgressService
		Scores   *service.ScoreService
		Question *service.QuestionService
	}
}

// NewCore 构建核心依赖
func NewCore(cfgPath string) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	config.SetupLogger(cfg.App.LogLevel)

	seeds := make([]repository.SeedUser, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		seeds = append(seeds, repository.SeedUser{Name: u.Name, Avatar: u.Avatar})
	}

	db, err := repository.NewDatabase(cfg.Storage.DBPath, seeds)
	if err != nil {
		return nil, err
	}

	c := &Core{Cfg: cfg, DB: db, Hub: eventbus.NewHub()}

	// Repos
	c.Repos.User = repository.NewUserRepository(db.DB)
	c.Repos.Login = repository.NewLoginRepository(db.DB)
	c.Repos.Score = repository.NewScoreRepository(db.DB)
	c.Repos.Reading = repository.NewReadingRepository(db.DB)
	c.Repos.Question = repository.NewQuestionRepository(db.DB)

	// Services（时钟取 time.Now，按进程本地时区归档日历日）
	c.Services.Progress = service.NewProgressService(c.Repos.Login, c.Hub, nil)
	c.Services.Scores = service.NewScoreService(c.Repos.Score, c.Repos.Reading, c.Hub, nil)
	c.Services.Question = service.NewQuestionService(c.Repos.Question, nil)

	return c, nil
}

// Close 关闭核心依赖资源
func (c *Core) Close() error {
	if c == nil {
		return nil
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
