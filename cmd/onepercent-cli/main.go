package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuqie6/onepercent/internal/bootstrap"
	"github.com/yuqie6/onepercent/internal/pkg/buildinfo"
	"github.com/yuqie6/onepercent/internal/schema"
	"github.com/yuqie6/onepercent/internal/service"
)

var (
	cfgFile string
	core    *bootstrap.Core
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "onepercent",
		Short: "OnePercent - 每天进步 1% 的家庭打卡与学习记录工具",
		Long:  `OnePercent 记录每日登录、连续打卡、各类学习活动得分与阅读进度，数据保存在本地 SQLite。`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			core, err = bootstrap.NewCore(cfgFile)
			if err != nil {
				slog.Error("初始化失败", "error", err)
				os.Exit(1)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if core != nil {
				_ = core.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径")

	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(checkinCmd())
	rootCmd.AddCommand(streakCmd())
	rootCmd.AddCommand(todayCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(readingCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveUser 按名字找用户，找不到直接退出
func resolveUser(ctx context.Context, name string) *schema.User {
	user, err := core.Repos.User.GetByName(ctx, name)
	if err != nil {
		slog.Error("查询用户失败", "error", err)
		os.Exit(1)
	}
	if user == nil {
		fmt.Printf("⚠️  用户 %q 不存在，可用 `onepercent users` 查看名单\n", name)
		os.Exit(1)
	}
	return user
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "列出全部用户",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			users, err := core.Repos.User.List(ctx)
			if err != nil {
				slog.Error("列出用户失败", "error", err)
				os.Exit(1)
			}
			for _, u := range users {
				fmt.Printf("%s  %-12s (id=%d)\n", u.Avatar, u.Name, u.ID)
			}
		},
	}
}

func checkinCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "checkin <name>",
		Short: "记录今日打卡（同日重复无副作用）",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			user := resolveUser(ctx, args[0])

			if err := core.Services.Progress.RecordLogin(ctx, user.ID, date); err != nil {
				slog.Error("打卡失败", "error", err)
				os.Exit(1)
			}
			fmt.Printf("✅ %s 打卡成功\n", user.Name)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "补录日期 YYYY-MM-DD（默认今天）")
	return cmd
}

func streakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak <name>",
		Short: "查看连续打卡与累计天数",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			user := resolveUser(ctx, args[0])

			streak, err := core.Services.Progress.CurrentStreak(ctx, user.ID)
			if err != nil {
				slog.Error("计算连续天数失败", "error", err)
				os.Exit(1)
			}
			total, err := core.Services.Progress.TotalLoginDays(ctx, user.ID)
			if err != nil {
				slog.Error("统计累计天数失败", "error", err)
				os.Exit(1)
			}

			fmt.Printf("%s %s\n", user.Avatar, user.Name)
			fmt.Printf("   🔥 连续打卡: %d 天\n", streak)
			fmt.Printf("   📅 累计打卡: %d 天\n", total)
		},
	}
}

func todayCmd() *cobra.Command {
	var activityType string

	cmd := &cobra.Command{
		Use:   "today <name>",
		Short: "查看今天完成的活动",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			user := resolveUser(ctx, args[0])

			scores, err := core.Services.Scores.TodayScores(ctx, user.ID, activityType)
			if err != nil {
				slog.Error("查询当日得分失败", "error", err)
				os.Exit(1)
			}
			if len(scores) == 0 {
				fmt.Println("今天还没有完成任何活动")
				return
			}

			for _, s := range scores {
				fmt.Printf("%-8s %-24s %3d/%-3d  %s\n", s.ActivityType, s.ActivityName, s.Score, s.MaxScore, s.Details)
			}

			stats, err := core.Services.Scores.TodaySummary(ctx, user.ID)
			if err != nil {
				slog.Error("聚合当日得分失败", "error", err)
				os.Exit(1)
			}
			fmt.Println()
			for _, st := range stats {
				fmt.Printf("   %s: %d 次, 平均 %.1f, 最高 %d\n", st.ActivityType, st.Count, st.AvgScore, st.BestScore)
			}
		},
	}

	cmd.Flags().StringVarP(&activityType, "type", "t", "", "只看某活动类型（Reading / Math / GK ...）")
	return cmd
}

func historyCmd() *cobra.Command {
	var activityType string
	var days int

	cmd := &cobra.Command{
		Use:   "history <name>",
		Short: "查看得分历史（按日期升序的趋势视图）",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			user := resolveUser(ctx, args[0])

			scores, err := core.Services.Scores.ScoreHistory(ctx, user.ID, activityType, days)
			if err != nil {
				slog.Error("查询得分历史失败", "error", err)
				os.Exit(1)
			}
			if len(scores) == 0 {
				fmt.Printf("最近 %d 天没有记录\n", days)
				return
			}

			for _, s := range scores {
				fmt.Printf("%s  %-8s %-24s %3d/%-3d\n", s.LogDate, s.ActivityType, s.ActivityName, s.Score, s.MaxScore)
			}
		},
	}

	cmd.Flags().StringVarP(&activityType, "type", "t", "", "只看某活动类型")
	cmd.Flags().IntVarP(&days, "days", "d", 30, "回溯天数")
	return cmd
}

func readingCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "reading <name>",
		Short: "查看阅读历史",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			user := resolveUser(ctx, args[0])

			records, err := core.Services.Scores.ReadingHistory(ctx, user.ID, days)
			if err != nil {
				slog.Error("查询阅读历史失败", "error", err)
				os.Exit(1)
			}
			if len(records) == 0 {
				fmt.Printf("最近 %d 天没有阅读记录\n", days)
				return
			}

			for _, r := range records {
				fmt.Printf("%s  📖 %-28s %d/%d 题  (%.0f%%)  %ds\n",
					r.LogDate, r.StoryTitle, r.QuestionsCorrect, r.QuestionsTotal,
					service.ReadingAccuracy(r)*100, r.TimeSpentSeconds)
			}
			fmt.Printf("\n   平均正确率: %.0f%%\n", service.AverageReadingAccuracy(records)*100)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "回溯天数")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "打印版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("onepercent %s (%s)\n", buildinfo.Version, buildinfo.Commit)
		},
	}
}
