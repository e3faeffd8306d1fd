// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dashboard

import "terolib/internal/models"

var quickStats = []models.Stat{
	{Key: "students", Label: "إجمالي الطلاب", Value: "2.3M", Change: "+5.2%", Trend: models.TrendUp, Icon: "users"},
	{Key: "schools", Label: "المدارس المطورة", Value: "1,240", Change: "+12%", Trend: models.TrendUp, Icon: "graduation-cap"},
	{Key: "documents", Label: "الوثائق الرقمية", Value: "15.4K", Change: "+20%", Trend: models.TrendUp, Icon: "file-text"},
	{Key: "employment", Label: "نسبة التوظيف", Value: "78%", Change: "+4.1%", Trend: models.TrendUp, Icon: "activity"},
}

var dashboardStats = []models.Stat{
	{Key: "students", Label: "إجمالي الطلاب", Value: "1,204,500", Icon: "users"},
	{Key: "schools", Label: "المدارس الفنية", Value: "2,340", Icon: "graduation-cap"},
	{Key: "archived", Label: "الوثائق المؤرشفة", Value: "45,210", Icon: "file-text"},
	{Key: "growth", Label: "معدل النمو", Value: "+12.5%", Icon: "activity"},
}

var monthly = []models.ActivityPoint{
	{Month: "يناير", Students: 4000, Docs: 2400},
	{Month: "فبراير", Students: 3000, Docs: 1398},
	{Month: "مارس", Students: 2000, Docs: 9800},
	{Month: "أبريل", Students: 2780, Docs: 3908},
	{Month: "مايو", Students: 1890, Docs: 4800},
	{Month: "يونيو", Students: 2390, Docs: 3800},
}

var distribution = []models.Share{
	{Name: "تعليم تقني", Value: 400},
	{Name: "تعليم مزدوج", Value: 300},
	{Name: "تدريب مهني", Value: 300},
	{Name: "أخرى", Value: 200},
}

var quickLinks = []struct {
	id, title, color string
}{
	{"green-comp", "دليل الجدارات 2024", "blue"},
	{"digitization-plan", "خارطة طريق الرقمية", "purple"},
	{"market-data", "إحصائيات سوق العمل", "orange"},
}
