// Package content holds the read-only text rendered by the site.
package content

// Profile is the hero banner and about section.
type Profile struct {
	Name     string
	Role     string
	Summary  string
	AboutMe  string
	Email    string
	GitHub   string
	LinkedIn string
	// ResumeFilename is offered to the browser on download.
	ResumeFilename string
}

type Experience struct {
	Company  string
	Role     string
	Duration string
	Location string
	LogoPath string
	Bullets  []string
}

type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech_stack"`
	Period      string   `json:"period,omitempty"`
	Link        string   `json:"link,omitempty"`
	DemoURL     string   `json:"demo_url,omitempty"`
	Featured    bool     `json:"is_featured"`
}

type SkillGroup struct {
	Category string
	Skills   []string
}

type Education struct {
	Degree      string
	School      string
	Period      string
	LogoPath    string
	Description string
	Bullets     []string
}

type Certification struct {
	Name   string
	Issuer string
	Status string
}

// Site bundles every section for the index page.
type Site struct {
	Profile        Profile
	Experience     []Experience
	Projects       []Project
	Skills         []SkillGroup
	Education      []Education
	Certifications []Certification
	Achievements   []string
}

// Default returns the published portfolio content.
func Default() Site {
	return Site{
		Profile:        profile,
		Experience:     experience,
		Projects:       projects,
		Skills:         skills,
		Education:      education,
		Certifications: certifications,
		Achievements:   achievements,
	}
}

// ProjectByID finds a project by its id.
func ProjectByID(all []Project, id int) (Project, bool) {
	for _, p := range all {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// FeaturedProjects returns only the projects flagged for the hero strip.
func FeaturedProjects(all []Project) []Project {
	out := make([]Project, 0, len(all))
	for _, p := range all {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

var profile = Profile{
	Name:    "Zach Kordas-Potter",
	Role:    "Software Developer",
	Summary: "Developer building useful, fun software in Go, Python and the web.",
	AboutMe: `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.
When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
or chasing down a new challenge outside the screen.`,
	Email:          "zachkordaspotter@gmail.com",
	GitHub:         "https://github.com/Zachkp",
	LinkedIn:       "https://www.linkedin.com/in/zachkp",
	ResumeFilename: "Zach_Kordas-Potter_Resume.pdf",
}

var experience = []Experience{
	{
		Company:  "Target",
		Role:     "Presentation Expert",
		Duration: "Aug 2023 – Present",
		LogoPath: "images/TargetLogo.jpg",
		Bullets: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
			"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
			"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
		},
	},
	{
		Company:  "Jasons Catered Events",
		Role:     "Manager",
		Duration: "Aug 2016 – Present",
		LogoPath: "images/jasonsCateringLogo.png",
		Bullets: []string{
			"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
			"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems, reducing technical delays and improving communication",
			"Maintained supply inventory and coordinated timely delivery between venues, optimizing resource allocation and minimizing downtime.",
		},
	},
}

var projects = []Project{
	{
		ID:          1,
		Title:       "Terminal Mail",
		Description: "A terminal-based email client built in Go with fuzzyfinder capabilities using the Charmbracelet TUI framework and go-imap.",
		Tech:        []string{"Go", "Bubble Tea", "go-imap"},
		Link:        "https://github.com/Zachkp",
		Featured:    true,
	},
	{
		ID:          2,
		Title:       "Terminal Music",
		Description: "A terminal-based music streaming application built in Go with an elegant TUI interface, leveraging yt-dlp and mpv for seamless YouTube Music playback directly from the command line.",
		Tech:        []string{"Go", "Bubble Tea", "yt-dlp", "mpv"},
		Link:        "https://github.com/Zachkp",
		Featured:    true,
	},
	{
		ID:          3,
		Title:       "Game Recommender",
		Description: "A machine learning-powered web application that uses TF-IDF vectorization and cosine similarity to recommend games based on content analysis, featuring interactive data visualizations and real-time filtering by user reviews and ratings.",
		Tech:        []string{"Python", "scikit-learn", "Pandas"},
		Link:        "https://github.com/Zachkp",
	},
	{
		ID:          4,
		Title:       "This Portfolio",
		Description: "A responsive portfolio website built with Go, Gin and HTMX for dynamic interactions, styled with Tailwind CSS.",
		Tech:        []string{"Go", "Gin", "HTMX", "SQLite", "Tailwind CSS"},
		Link:        "https://github.com/Zachkp/portfolio",
		Featured:    true,
	},
}

var skills = []SkillGroup{
	{Category: "Languages", Skills: []string{"Go", "Python", "JavaScript", "SQL"}},
	{Category: "Web", Skills: []string{"Gin", "HTMX", "Tailwind CSS", "Alpine.js"}},
	{Category: "Tools", Skills: []string{"Git", "Linux", "SQLite", "Docker"}},
}

var education = []Education{
	{
		Degree:   "Bachelor of Computer Science",
		School:   "Western Governors University",
		Period:   "Sept 2019 – May 2023",
		LogoPath: "images/WGU-logo.png",
		Bullets: []string{
			"Graduated Magna Cum Laude with 3.8 GPA",
			"Relevant coursework: Data Structures, Algorithms, Web Development",
			"Senior project: Machine Learning recommendation system",
		},
	},
}

var certifications = []Certification{
	{Name: "Project+", Issuer: "CompTIA", Status: "Completed"},
}

var achievements = []string{
	"Shipped two terminal applications in Go used daily by their author.",
	"Graduated Magna Cum Laude while working full time.",
}
