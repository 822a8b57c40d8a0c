package catalog

import "github.com/robby/folio/internal/domain"

// DemoBaseURL prefixes the demo image paths.
const DemoBaseURL = "http://localhost:3000"

var demoProjects = []domain.Project{
	{
		ID:            "everyday-flowers",
		Name:          "Everyday Flowers",
		Description:   "Johanna Hobel for Vogue",
		Date:          "Jun 2019",
		ImageURL:      "images/image01.jpg",
		BackgroundURL: "images/image01@2x.jpg",
	},
	{
		ID:            "the-wilder-night",
		Name:          "The Wilder Night",
		Description:   "Johanna Hobel for Wild",
		Date:          "Dec 2019",
		ImageURL:      "images/image02.jpg",
		BackgroundURL: "images/image02@2x.jpg",
	},
	{
		ID:            "smooth-memories",
		Name:          "Smooth Memories",
		Description:   "Johanna Hobel for Chanel",
		Date:          "Feb 2020",
		ImageURL:      "images/image03.jpg",
		BackgroundURL: "images/image03@2x.jpg",
	},
	{
		ID:            "the-future-universe",
		Name:          "The Future Universe",
		Description:   "Johanna Hobel for On",
		Date:          "Apr 2020",
		ImageURL:      "images/image04.jpg",
		BackgroundURL: "images/image04@2x.jpg",
	},
	{
		ID:            "she-was-born-urban",
		Name:          "She was born urban",
		Description:   "Johanna Hobel for S1",
		Date:          "Dec 2021",
		ImageURL:      "images/image05.jpg",
		BackgroundURL: "images/image05@2x.jpg",
	},
}
