package core

import (
	"fmt"
	"time"
)

// Virtual project filter values computed from the caller's membership flag.
// They are never stored on the entity; the persisted enumeration is
// ProjectStatus.
const (
	FilterJoined    = "joined"
	FilterAvailable = "available"
)

// ProjectSpec wires the Projects collection: student collaborations with a
// join/leave toggle paired to the member count.
func ProjectSpec() EntitySpec[Project] {
	return EntitySpec[Project]{
		Key:  KeyProjects,
		Seed: seedProjects,
		ID:   func(p Project) string { return p.ID },
		AssignID: func(p Project, id string) Project {
			p.ID = id
			return p
		},
		Validate: func(p Project) error {
			return requireFields(
				"title", p.Title,
				"description", p.Description,
			)
		},
		SearchText: func(p Project) []string {
			fields := []string{p.Title, p.Description}
			fields = append(fields, p.TechStack...)
			fields = append(fields, p.Tags...)
			return fields
		},
		Match: func(p Project, category string) bool {
			switch category {
			case FilterAll:
				return true
			case FilterJoined:
				return p.IsJoined
			case FilterAvailable:
				return !p.IsJoined
			default:
				return string(p.Status) == category
			}
		},
		Toggle: func(p Project) Project {
			if p.IsJoined {
				p.IsJoined = false
				if p.Members > 0 {
					p.Members--
				}
			} else {
				p.IsJoined = true
				p.Members++
			}
			return p
		},
		Created: func(p Project) Notification {
			return success("Project created", fmt.Sprintf("Your project %q is now live.", p.Title))
		},
		Toggled: func(p Project) Notification {
			if p.IsJoined {
				return success("Join request sent", fmt.Sprintf("Your request to join %q has been sent.", p.Title))
			}
			return success("Left project", fmt.Sprintf("You've left the %q team.", p.Title))
		},
	}
}

// NewProjectDraft builds a project draft owned by creator: the creator is
// its first member, so membership starts joined. The creator's name and
// avatar are snapshot copies; no reference to the session is kept.
func NewProjectDraft(title, description string, techStack, tags, lookingFor []string, maxMembers int, creator User, now time.Time) Project {
	return Project{
		Title:         title,
		Description:   description,
		TechStack:     techStack,
		Tags:          tags,
		LookingFor:    lookingFor,
		Creator:       creator.Name,
		CreatorAvatar: creator.Avatar,
		Members:       1,
		MaxMembers:    maxMembers,
		Status:        StatusPlanning,
		CreatedAt:     now.UTC().Format("2006-01-02"),
		IsJoined:      true,
	}
}

func seedProjects() []Project {
	return []Project{
		{
			ID:            "1",
			Title:         "AI-Powered Study Assistant",
			Description:   "Building an intelligent study companion that adapts to your learning style",
			TechStack:     []string{"React", "Python", "TensorFlow"},
			Tags:          []string{"AI", "Education"},
			LookingFor:    []string{"Backend Dev", "UI/UX Designer"},
			Creator:       "Sarah Johnson",
			CreatorAvatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=sarah",
			Members:       3,
			MaxMembers:    5,
			Status:        StatusActive,
			CreatedAt:     "2025-07-10",
		},
		{
			ID:            "2",
			Title:         "Campus Event Management System",
			Description:   "A comprehensive platform for managing campus events end to end",
			TechStack:     []string{"Vue.js", "Node.js", "MongoDB"},
			Tags:          []string{"Web Dev", "Events"},
			LookingFor:    []string{"Frontend Dev"},
			Creator:       "Mike Chen",
			CreatorAvatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=mike",
			Members:       2,
			MaxMembers:    4,
			Status:        StatusActive,
			CreatedAt:     "2025-07-08",
			IsJoined:      true,
		},
		{
			ID:            "3",
			Title:         "Sustainable Campus Initiative",
			Description:   "Developing a mobile app to track and gamify sustainable practices on campus",
			TechStack:     []string{"React Native", "Firebase"},
			Tags:          []string{"Sustainability", "Mobile"},
			LookingFor:    []string{"Data Analyst"},
			Creator:       "Emma Davis",
			CreatorAvatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=emma",
			Members:       4,
			MaxMembers:    6,
			Status:        StatusPlanning,
			CreatedAt:     "2025-07-05",
		},
	}
}
