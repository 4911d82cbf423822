package engine

import (
	"context"

	"soloquest/internal/storage"
)

// QuestTemplate is one entry of the fixed recurring daily quest set.
type QuestTemplate struct {
	Name        string
	Stat        Stat
	XPReward    int
	Description string
}

func dailyQuestTemplates() []QuestTemplate {
	return []QuestTemplate{
		{"Plan your top 3 priorities", StatDISC, 20, "写下今天最重要的三件事，专注执行。清单越短，执行力越强。"},
		{"60 minutes deep work sprint", StatINT, 35, "不间断专注工作 60 分钟。关闭通知，进入心流状态。"},
		{"Workout / movement session", StatSTR, 30, "任何形式的体能训练：健身房、跑步、游泳均可。动起来。"},
		{"Meaningful outreach or connection", StatSOC, 25, "主动联系一个有价值的人：合作、请教或分享。"},
		{"Create something publishable", StatCRE, 40, "创造一件可以对外发布的作品：代码、功能、内容等。"},
		{"Push a commit", StatCRE, 30, "向代码仓库提交至少一个 commit。代码即进度。"},
	}
}

type GenerateResult struct {
	Generated bool
	Count     int
	Date      string
	Reason    string
}

// GenerateDailyQuests seeds today's recurring quest instances. Idempotent:
// if any non-boss quest already exists for today the call is a no-op
// reporting the existing count. The existence check and the inserts share
// one transaction, so concurrent callers cannot double-seed a day.
func (s *Service) GenerateDailyQuests(ctx context.Context) (*GenerateResult, error) {
	var res *GenerateResult
	err := s.runTx(ctx, func(r *storage.Repos) error {
		c, err := r.Characters.Get(ctx)
		if err != nil {
			return err
		}
		if c == nil {
			res = &GenerateResult{Generated: false, Reason: "no_character"}
			return nil
		}

		today := s.today()
		count, err := r.Quests.CountOnDate(ctx, today)
		if err != nil {
			return err
		}
		if count > 0 {
			res = &GenerateResult{Generated: false, Count: count, Date: today, Reason: "already_exists"}
			return nil
		}

		now := s.nowISO()
		templates := dailyQuestTemplates()
		for _, tmpl := range templates {
			desc := tmpl.Description
			if _, err := r.Quests.Insert(ctx, storage.QuestInsert{
				Name:        tmpl.Name,
				Stat:        string(tmpl.Stat),
				XPReward:    tmpl.XPReward,
				Date:        today,
				Description: &desc,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		res = &GenerateResult{Generated: true, Count: len(templates), Date: today}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
