// Package catalog содержит встроенную витрину маршрутов.
//
// Каталог — внешний по отношению к хранилищу источник данных:
// идентификаторы его карточек становятся идентификаторами сохранённых
// маршрутов в подборке пользователя.
package catalog

import "github.com/mmeshcher/slowtravel-system/internal/model"

var trips = []model.RouteDraft{
	{
		ID:        "fjord",
		Title:     "Фьорды без суеты",
		Region:    "Норвегия",
		Days:      6,
		Pace:      "Спокойный темп",
		Summary:   "От Бергена до Олесунна: туманные переправы, каяки и ночёвки в лоджах.",
		Tags:      model.TagList{"морской воздух", "рассветы", "кафе у воды"},
		Highlight: "Закат на смотровой Trollstigen и горячий сидр в Alesund Bakeri.",
		Description: "Маршрут для тех, кто любит море и горы, но без гонки по чеклисту. " +
			"Переправы по фьордам, тихие бухты, прогулки по деревянным набережным и тёплые кафе в старых кварталах.",
		Plan: []model.PlanStop{
			{Name: "Берген", Note: "Ганзейская набережная, старые склады, вечерний рыбный рынок."},
			{Name: "Гейрангер", Note: "Смотровая Flydalsjuvet, короткий хайкинг к водопаду Storseterfossen."},
			{Name: "Олесунн", Note: "Ар-нуво фасады, вид с Aksla, каяки на зеркальной воде."},
		},
	},
	{
		ID:        "kyoto",
		Title:     "Утренний Киото",
		Region:    "Япония",
		Days:      5,
		Pace:      "Ранние подъёмы",
		Summary:   "Тихие улочки Хигасиямы, чайные дома и велосипедные петли вдоль Камо.",
		Tags:      model.TagList{"чай", "архитектура", "велосипед"},
		Highlight: "Прогулка по бамбуковому лесу Арасиямы до рассвета и поздний завтрак в Nishiki Market.",
		Description: "Собранный маршрут без толпы: приходим в святыни на рассвете, пьём матча латте в киосках " +
			"и катаемся по кварталам, где всё ещё пахнет кедром.",
		Plan: []model.PlanStop{
			{Name: "Фусими Инаари", Note: "Стартуем в 5:30, тропа через тысячи торий почти пустая."},
			{Name: "Арасияма", Note: "Бамбуковая роща, мост Тогецукё, чай у реки Ои."},
			{Name: "Гион", Note: "Медленные улицы с гейшими кварталами, сувениры у Yasaka Shrine."},
		},
	},
	{
		ID:        "desert",
		Title:     "Атлас и пустыня",
		Region:    "Марокко",
		Days:      7,
		Pace:      "Экспедиция",
		Summary:   "От Марракеша к барханам Мерзуги: риады, касбы и ночи под звёздами.",
		Tags:      model.TagList{"пустыня", "реликвии", "звёзды"},
		Highlight: "Глинобитные касбы Айт-Бен-Хадду на закате и камин в риаде.",
		Description: "Контраст медины и каменных перевалов. Поднимаемся на серпантины Атласа, останавливаемся " +
			"в оазисах, учимся заваривать атай, ловим прохладу в тенистых двориках.",
		Plan: []model.PlanStop{
			{Name: "Марракеш", Note: "Сук, терассы с апельсиновым соком, сады Мажорель."},
			{Name: "Айт-Бен-Хадду", Note: "Небольшие подъёмы, закат на террасе касбы."},
			{Name: "Мерзуга", Note: "Верблюды к эргу Чебби, дюны, берберская музыка у костра."},
		},
	},
	{
		ID:        "georgia",
		Title:     "Горные завтраки",
		Region:    "Грузия",
		Days:      4,
		Pace:      "Выходные в горах",
		Summary:   "Кафе в Тбилиси, дорога в Казбеги и панорамы с глинтвейном.",
		Tags:      model.TagList{"панорамы", "сыр", "лёгкие тропы"},
		Highlight: "Ранний подъём к храму Гергети, хачапури на террасе Rooms Kazbegi.",
		Description: "Маршрут для короткого побега: немного городской жизни, чуть-чуть альпийских лугов. " +
			"Тёплые хинкали, облака вокруг Казбека и влажный воздух ущелий.",
		Plan: []model.PlanStop{
			{Name: "Тбилиси", Note: "Серные бани, кофе в Fabrika, мост Мира вечером."},
			{Name: "Военно-Грузинская дорога", Note: "Остановка у Жинвальского водохранилища, смотровые у Гудаури."},
			{Name: "Степанцминда", Note: "Тропа к Гергети, пикник с ачмой и вином."},
		},
	},
}

func copyDraft(d model.RouteDraft) model.RouteDraft {
	tags := make(model.TagList, len(d.Tags))
	copy(tags, d.Tags)
	plan := make([]model.PlanStop, len(d.Plan))
	copy(plan, d.Plan)
	d.Tags = tags
	d.Plan = plan
	return d
}

// Trips возвращает копию всех карточек каталога.
func Trips() []model.RouteDraft {
	res := make([]model.RouteDraft, 0, len(trips))
	for _, t := range trips {
		res = append(res, copyDraft(t))
	}
	return res
}

// Find возвращает карточку каталога по идентификатору или nil.
func Find(id string) *model.RouteDraft {
	for _, t := range trips {
		if t.ID == id {
			d := copyDraft(t)
			return &d
		}
	}
	return nil
}
