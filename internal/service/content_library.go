package service

import (
	"math/rand"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/maheshrc27/community-automation/internal/models"
)

// ContentProvider picks the canned post for a community update.
type ContentProvider interface {
	Next() models.CannedPost
}

type RandomProvider struct {
	posts []models.CannedPost
	intn  func(n int) int
}

func NewRandomProvider(posts []models.CannedPost) *RandomProvider {
	return &RandomProvider{posts: posts, intn: rand.Intn}
}

func (p *RandomProvider) Next() models.CannedPost {
	return p.posts[p.intn(len(p.posts))]
}

// FixedProvider always returns the same post.
type FixedProvider struct {
	Post models.CannedPost
}

func (p FixedProvider) Next() models.CannedPost {
	return p.Post
}

// CannedItem turns a canned post into a publishable item. Items share one
// log entry per post type.
func CannedItem(post models.CannedPost) *models.ContentItem {
	return &models.ContentItem{
		ID:       "community-" + post.Type,
		Title:    post.Type,
		Text:     post.Content,
		PostType: post.Type,
	}
}

// CommunityItem draws the next community update from p.
func CommunityItem(p ContentProvider) *models.ContentItem {
	return CannedItem(p.Next())
}

// CustomItem wraps free text in an item with a fresh identifier.
func CustomItem(text string) (*models.ContentItem, error) {
	id, err := gonanoid.New(12)
	if err != nil {
		return nil, err
	}
	return &models.ContentItem{
		ID:       "custom-" + id,
		Title:    "custom",
		Text:     text,
		PostType: "custom",
	}, nil
}

func CommunityPosts() []models.CannedPost {
	return []models.CannedPost{
		{
			Type: "weekly_update",
			Content: `🚀 This week in the AI Builders Community:

📚 New learning pathways published
💡 5 innovative AI projects shared
🤝 20+ developers collaborated on challenges
📈 Growing stronger together!

Join us for hands-on AI learning and real-world project development.

#AIBuilders #ArtificialIntelligence #CommunityLearning #AIEducation #TechCommunity`,
		},
		{
			Type: "challenge",
			Content: `🔥 Weekend AI Challenge Alert! 

This week's challenge: Build an AI-powered content analyzer using Claude Code.

What you'll learn:
✅ API integration patterns
✅ Natural language processing
✅ Real-time data analysis
✅ Community collaboration

Ready to level up your AI skills? Join the AI Builders Community!

#WeekendChallenge #AIBuilders #CodingChallenge #ArtificialIntelligence #LearnAI`,
		},
		{
			Type: "success_stories",
			Content: `💡 AI Builder Spotlight: Success Stories

Our community members are shipping incredible AI products:
• Automated content generation tools
• Smart data analysis dashboards  
• Intelligent chat assistants
• Custom AI workflows

Your next breakthrough could be one conversation away.

Join the AI Builders Community today! 🌟

#AISuccess #CommunitySpotlight #AIBuilders #ProductDevelopment #Innovation`,
		},
	}
}
