package engine

import (
	"fmt"
	"strings"

	"github.com/scottlepp/gen/internal/core/domain"
)

type contentStyle struct {
	Name     string
	Examples []string
}

var commentStyles = []contentStyle{
	{
		Name: "encouraging",
		Examples: []string{
			"You're crushing it! Keep pushing!",
			"This is amazing progress!",
			"Way to go! You're inspiring!",
		},
	},
	{
		Name: "personal_connection",
		Examples: []string{
			"I feel the same way about this exercise!",
			"This is exactly what I needed to see today!",
			"Totally relate to this! Same here!",
		},
	},
	{
		Name: "technical_tip",
		Examples: []string{
			"Try adding a slight pause at the bottom next time!",
			"Your form looks great! Maybe try a wider stance?",
			"That's a great variation! Have you tried adding a pause?",
		},
	},
	{
		Name: "motivational",
		Examples: []string{
			"This is the energy I needed today!",
			"You're making it happen! Keep going!",
			"This is what dedication looks like!",
		},
	},
	{
		Name: "community",
		Examples: []string{
			"Who else loves this exercise?",
			"Let's get a group going for this!",
			"Anyone want to try this together?",
		},
	},
}

var replyStyles = []contentStyle{
	{
		Name: "appreciative",
		Examples: []string{
			"Thanks for the support! Really means a lot!",
			"Appreciate the kind words! Let's keep pushing!",
			"Thank you! Your encouragement helps!",
		},
	},
	{
		Name: "engaging",
		Examples: []string{
			"Would love to hear your experience with this!",
			"What's your favorite variation of this?",
			"Any tips for increasing the intensity?",
		},
	},
	{
		Name: "friendly",
		Examples: []string{
			"You're awesome! Thanks for the motivation!",
			"Love the energy! Let's keep each other accountable!",
			"This community is the best! Thanks for being part of it!",
		},
	},
	{
		Name: "technical",
		Examples: []string{
			"Thanks! I'll try that variation next time!",
			"Appreciate the tip! Will definitely incorporate that!",
			"Your form tips are always spot-on!",
		},
	},
	{
		Name: "motivational",
		Examples: []string{
			"Your progress is inspiring! Keep pushing!",
			"We're all in this together! Let's crush it!",
			"Your dedication is contagious!",
		},
	},
	{
		Name: "personal",
		Examples: []string{
			"Totally relate to what you're saying!",
			"Been there! Your advice is spot-on!",
			"Your journey is inspiring!",
		},
	},
	{
		Name: "celebratory",
		Examples: []string{
			"Let's celebrate this win!",
			"You're crushing it!",
			"This is amazing progress!",
		},
	},
}

func exerciseContentPrompt(exercise string) string {
	return fmt.Sprintf("Write a detailed description of how to perform %s correctly, "+
		"including proper form, common mistakes to avoid, and benefits. "+
		"Make it engaging and informative.", exercise)
}

func exerciseImagePrompt(exercise string) string {
	return fmt.Sprintf("Create a detailed, realistic image of a person performing %s "+
		"with proper form. The person should be in a modern gym setting with good "+
		"lighting. The image should be photorealistic and clearly show the exercise "+
		"technique.", exercise)
}

func exerciseAnalysisPrompt(exercise string) string {
	return fmt.Sprintf(`Analyze this image of a person performing %s and provide a rating from 1-10, where:
1 = Completely incorrect/unsuitable
10 = Perfect representation

Consider these criteria:
1. Correct exercise form (0-5 points)
2. Clear visibility of the exercise (0-3 points)
3. Image quality and lighting (0-1 points)
4. Appropriate gym setting (0-1 points)

Start your response with "Rating: X/10" followed by a detailed explanation of the score and any issues found.`, exercise)
}

func commentPrompt(post domain.PostCandidate, style contentStyle, example string) string {
	return fmt.Sprintf(`Create a social media comment on this fitness post:

Post Title: %s
Post Content: %s
Post Author: %s

The comment should:
- Be in a %s style
- Be engaging and supportive
- Relate to the specific exercise or content mentioned
- Feel natural and conversational
- Be 1-2 sentences long
- Not be too technical or instructional
- Match the tone of a fitness app comment
- Be unique and not copy the example exactly
- Don't use emojis

Example style:
"%s"

Additional context:
- The commenter is a fitness enthusiast
- The comment should feel authentic and personal
- Keep it casual and friendly

Return the response in the following JSON format:
{"content": "string"}`, post.Title, post.Content, post.Author, style.Name, example)
}

func replyPrompt(c domain.CommentCandidate, style contentStyle, example string) string {
	return fmt.Sprintf(`Create a reply to this comment on a fitness post:

Post Title: %s
Post Content: %s
Original Comment: %s
Comment Author: %s

The reply should:
- Be in a %s style
- Tag the comment author using @%s
- Be engaging and friendly
- Relate to the specific exercise or content mentioned
- Feel natural and conversational
- Be 1-2 sentences long
- Not be too technical or instructional
- Match the tone of a fitness app comment
- Be unique and not copy the example exactly

Example style:
"%s"

Additional context:
- The replier is the post author
- The reply should feel authentic and personal
- Keep it casual and friendly

Return the response in the following JSON format:
{"content": "string"}`, c.PostTitle, c.PostContent, c.Content, c.Author, style.Name, c.Author, example)
}

func profilePrompt(gender domain.Gender, level domain.FitnessLevel, interests []string) string {
	return fmt.Sprintf(`Create a social media profile for a %s fitness enthusiast.
The person should be a %s level fitness enthusiast.
Their main interests are: %s.

The profile should:
- Have a unique, memorable display name (max 30 characters)
- Include a personal bio that reflects their fitness journey and goals
- Feel authentic and relatable
- Match their fitness level in tone and experience
- Reference their interests naturally in the bio
- Use pronouns appropriate for a %s person

Example display names (DO NOT USE THESE):
- "FitnessGuru123"
- "WorkoutWarrior"

Example display names (GOOD):
- "SarahLifts"
- "MikeOnTheMove"

Return the response in the following JSON format:
{"displayName": "string", "bio": "string"}`, gender, level, strings.Join(interests, ", "), gender)
}

func avatarPrompt(gender domain.Gender, level domain.FitnessLevel) string {
	return fmt.Sprintf(`Create a profile picture of a %s person who looks like a fitness enthusiast.
The person should be in workout clothes and have a natural, confident expression.
The image should be well-lit and look like a professional headshot.
The person should look like they are at a %s fitness level.
The style should be modern and appealing to fitness enthusiasts.
The person should be clearly identifiable as %s.

Important details:
- Hands should be anatomically correct and naturally positioned
- If showing weights or equipment, they should be properly placed and realistic
- The person's form and posture should be natural and professional
- No anatomical distortions or unrealistic features
- Professional lighting and image quality
- The person should look like a real fitness enthusiast, not a model`, gender, level, gender)
}

const avatarAnalysisPrompt = `Analyze this fitness profile avatar and check for the following issues:
1. Are the hands anatomically correct and properly positioned?
2. Are any weights or equipment shown in a realistic way?
3. Is the person's form and posture natural?
4. Are there any obvious anatomical distortions?
5. Is the lighting and image quality professional?
6. Does the person look like a real fitness enthusiast?

Return ONLY a JSON object in this exact format, with no additional text or markdown:
{"hasIssues": boolean, "issues": string[], "qualityScore": number}`
