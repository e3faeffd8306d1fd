// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "terolib/internal/models"

// GenericIcon is used for categories with no entry in the icon table.
const GenericIcon = "folder"

// icons maps category ids to glyph keys understood by the front end.
// Icons never persist; they are re-bound from this table on every load.
var icons = map[string]string{
	"home":           "home",
	"tero-about":     "library",
	"market-data":    "briefcase",
	"green-move":     "leaf",
	"tech-edu-all":   "cpu",
	"research":       "book-open",
	"dashboard-view": "layout-dashboard",
	"policies":       "scroll-text",
	"digital-trans":  "network",
	"chatbot-view":   "bot",
}

// IconFor returns the glyph key for a category id.
func IconFor(id string) string {
	if icon, ok := icons[id]; ok {
		return icon
	}
	return GenericIcon
}

func files(id, title string) models.SubCategory {
	return models.SubCategory{ID: id, Title: title, ContentType: models.ContentTypeFiles}
}

// Default returns a fresh copy of the built-in tree with icons bound.
func Default() Tree {
	t := Tree{
		{ID: "home", Title: "الرئيسية", ContentType: models.ContentTypeHome},
		{ID: "tero-about", Title: "عن التيرو (TERO)", SubCategories: []models.SubCategory{
			files("rd", "البحث والتطوير (D&R)"),
			files("md", "المتابعة والتقييم (M&D)"),
			files("coord", "التنسيق والتواصل"),
		}},
		{ID: "market-data", Title: "معلومات سوق العمل", ContentType: models.ContentTypeFiles},
		{ID: "green-move", Title: "التوجه نحو الأخضر", SubCategories: []models.SubCategory{
			files("green-init", "المبادرات البيئية"),
			files("green-comp", "الجدارات البيئية"),
			files("renewable", "الطاقة المتجددة"),
			files("social-bal", "التوازن المجتمعي"),
		}},
		{ID: "tech-edu-all", Title: "التعليم التقني", ContentType: models.ContentTypeFiles},
		{ID: "research", Title: "البحوث والدراسات", SubCategories: []models.SubCategory{
			files("research-local", "دراسات محلية"),
			files("research-intl", "دراسات دولية"),
		}},
		{ID: "dashboard-view", Title: "لوحة البيانات", ContentType: models.ContentTypeDashboard},
		{ID: "policies", Title: "السياسات والاستراتيجيات", SubCategories: []models.SubCategory{
			files("vision-2030", "رؤية مصر 2030"),
			files("ministerial-dec", "القرارات الوزارية"),
			files("reform-pillars", "محاور الإصلاح"),
		}},
		{ID: "digital-trans", Title: "التحول الرقمي", SubCategories: []models.SubCategory{
			files("digitization-plan", "الرقمنة في التعليم التقني"),
			files("ai-guide", "الذكاء الاصطناعي"),
		}},
		{ID: "chatbot-view", Title: "المساعد الذكي", ContentType: models.ContentTypeChatbot},
	}
	t.BindIcons()
	return t
}
