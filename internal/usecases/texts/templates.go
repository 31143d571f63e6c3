package texts

// Тексты чата, разметка HTML (parse_mode=HTML)

const (
	Welcome = "👋 Привет, %s!\n\n" +
		"Добро пожаловать в <b>ExamShop</b> — магазин ответов на ЕГЭ и ОГЭ 2025!\n\n" +
		"📚 У нас вы найдёте:\n" +
		"• Математика (профиль и база)\n" +
		"• Русский язык\n" +
		"• Обществознание\n" +
		"• Физика, химия, история\n" +
		"• И другие предметы!\n\n" +
		"Выберите категорию или откройте магазин:"

	WelcomeFallbackName = "друг"

	MainMenu = "🏠 <b>Главное меню</b>\n\nВыберите действие:"

	ReplyKeyboardShown = "⌨️ Клавиатура включена. Используйте кнопки внизу экрана."

	Help = "❓ <b>Помощь</b>\n\n" +
		"/start — главное меню\n" +
		"/orders — мои заказы\n" +
		"/promo КОД — проверить промокод\n" +
		"/menu — показать клавиатуру\n" +
		"/help — эта справка\n\n" +
		"Покупки оформляются в магазине, оплата через Telegram Stars ⭐"

	Failure = "⚠️ Что-то пошло не так. Попробуйте позже."
)

// Каталог
const (
	CatalogHeader     = "📚 <b>%s — Доступные предметы:</b>\n\n"
	CatalogItem       = "📖 <b>%s</b>\n💰 %d ⭐"
	CatalogItemStrike = " <s>%d ⭐</s> (-%d%%)"
	CatalogFooter     = "\n🛍 Откройте магазин для покупки!"
	CatalogEmpty      = "Предметы не найдены"
)

// Заказы
const (
	OrdersNotRegistered = "❌ Вы ещё не зарегистрированы. Откройте магазин через кнопку ниже."
	OrdersEmpty         = "📭 У вас пока нет заказов.\n\nОткройте магазин, чтобы сделать первую покупку!"
	OrdersHeader        = "📦 <b>Ваши заказы:</b>\n\n"
	OrderLine           = "%s <b>#%s</b>\n📅 %s • %d ⭐\n"
	OrderTitles         = "📚 %s\n"
	OrderStatusLine     = "Статус: %s\n\n"
)

// Промокоды
const (
	PromoHelp = "🎁 <b>Промокоды</b>\n\n" +
		"Чтобы применить промокод, введите:\n" +
		"<code>/promo КОД</code>\n\n" +
		"Например: /promo DISCOUNT10"
	PromoNotFound  = "❌ Промокод не найден или недействителен."
	PromoExhausted = "❌ Этот промокод уже использован максимальное количество раз."
	PromoExpired   = "❌ Срок действия промокода истёк."
	PromoValid     = "✅ <b>Промокод найден!</b>\n\n" +
		"🎁 Код: <code>%s</code>\n" +
		"💰 Скидка: <b>%d%%</b>\n\n" +
		"Используйте его при оформлении заказа в магазине."
)

// Оплата
const (
	PaymentReceipt      = "✅ <b>Оплата получена!</b>\n\nСпасибо за покупку! Ваши материалы:\n\n"
	PaymentReceiptItem  = "📖 <b>%s</b>"
	PaymentContent      = "📖 <b>%s</b>\n\n%s"
	PaymentContentLink  = "📎 <a href=\"%s\">Скачать материалы</a>"
	PaymentContentDelay = "⏳ Часть материалов не удалось отправить автоматически. Мы уже разбираемся и пришлём их в ближайшее время."

	DeclineOrderUnavailable = "Заказ не найден или уже оплачен"
	DeclineAmountMismatch   = "Сумма заказа не совпадает"
	DeclineTemporary        = "Не удалось проверить заказ, попробуйте ещё раз"
)

// Кнопки
const (
	ButtonEGE          = "📚 ЕГЭ"
	ButtonOGE          = "📖 ОГЭ"
	ButtonMyOrders     = "🛒 Мои заказы"
	ButtonPromo        = "🎁 Промокод"
	ButtonHelp         = "❓ Помощь"
	ButtonOpenShop     = "🛍 Открыть магазин"
	ButtonBack         = "⬅️ Назад"
	ButtonClose        = "✖️ Закрыть"
)

// Callback data inline-кнопок
const (
	CallbackCategoryPrefix = "category_"
	CallbackMyOrders       = "my_orders"
	CallbackPromo          = "promo"
	CallbackBackToMenu     = "back_to_menu"
	CallbackClose          = "close"
)
