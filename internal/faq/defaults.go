package faq

// DefaultEntries returns the built-in FAQ used when configuration does not
// provide its own list.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Key:      "faq1",
			Question: "как оформить заказ",
			Answer:   "Выберите товар, нажмите 'Добавить в корзину', затем перейдите в корзину и следуйте инструкциям.",
		},
		{
			Key:      "faq2",
			Question: "статус моего заказа",
			Answer:   "Войдите в свой аккаунт и откройте раздел 'Мои заказы'. Там указан статус.",
		},
		{
			Key:      "faq3",
			Question: "как отменить заказ",
			Answer:   "Свяжитесь с нашей службой поддержки как можно скорее — мы постараемся отменить заказ до отправки.",
		},
		{
			Key:      "faq4",
			Question: "товар пришел поврежденным",
			Answer:   "Свяжитесь с поддержкой и отправьте фото повреждений. Мы поможем с возвратом или обменом.",
		},
		{
			Key:      "faq5",
			Question: "как связаться с технической поддержкой",
			Answer:   "Позвоните по номеру на сайте или напишите в чат-бот.",
		},
		{
			Key:      "faq6",
			Question: "информация о доставке",
			Answer:   "Информацию о доставке смотрите на странице оформления заказа.",
		},
	}
}
