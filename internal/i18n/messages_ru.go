package i18n

var messagesRU = map[string]string{
	"error.bad_request":              "Некорректный запрос",
	"error.unauthorized":             "Пожалуйста, войдите в систему",
	"error.forbidden":                "Доступ запрещён",
	"error.not_found":                "Не найдено",
	"error.internal":                 "Что-то пошло не так, попробуйте позже",
	"error.rate_limited":             "Слишком много попыток, повторите через %d с",
	"error.rate_limit_unavailable":   "Ограничитель запросов недоступен",
	"error.session_unavailable":      "Хранилище сессий недоступно",
	"error.auth_header_missing":      "Отсутствует заголовок авторизации",
	"error.auth_header_invalid":      "Некорректный заголовок авторизации",
	"error.token_invalid":            "Токен недействителен или истёк",
	"error.token_revoked":            "Токен отозван, войдите снова",
	"error.user_disabled":            "Учётная запись заблокирована",
	"error.user_not_found":           "Пользователь не найден",
	"error.product_not_found":        "Товар не найден",
	"error.category_not_found":       "Категория не найдена",
	"error.order_not_found":          "Заказ не найден",
	"error.invalid_quantity":         "Количество должно быть положительным числом",
	"error.invalid_product_id":       "Некорректный идентификатор товара",
	"error.invalid_order_id":         "Некорректный идентификатор заказа",
	"error.cart_load_failed":         "Не удалось прочитать корзину",
	"error.cart_empty":               "Ваша корзина пуста",
	"error.checkout_invalid":         "Исправьте ошибки в форме",
	"error.product_unavailable":      "Товар %s больше недоступен",
	"error.insufficient_stock":       "Недостаточно товара %s: в наличии %d",
	"error.order_create_failed":      "Ошибка при создании заказа, попробуйте ещё раз",
	"error.order_user_required":      "Войдите, чтобы оформить заказ",
	"error.username_invalid":         "Имя пользователя может содержать только буквы, цифры и @/./+/-/_ (3-150 символов)",
	"error.username_exists":          "Пользователь с таким именем уже существует",
	"error.email_invalid":            "Введите корректный адрес электронной почты",
	"error.email_exists":             "Пользователь с таким email уже существует",
	"error.password_mismatch":        "Пароли не совпадают",
	"error.password_old_invalid":     "Старый пароль введён неверно",
	"error.password_policy":          "Пароль не соответствует требованиям",
	"error.password_policy_length":   "Пароль должен содержать не менее %d символов",
	"error.password_policy_upper":    "Пароль должен содержать заглавную букву",
	"error.password_policy_lower":    "Пароль должен содержать строчную букву",
	"error.password_policy_number":   "Пароль должен содержать цифру",
	"error.password_policy_special":  "Пароль должен содержать специальный символ",
	"error.invalid_credentials":      "Неверное имя пользователя или пароль",
	"field.required":                 "Обязательное поле",
	"field.email":                    "Введите корректный адрес электронной почты",
	"field.max":                      "Не более %s символов",
	"field.oneof":                    "Выберите корректный вариант",
	"field.invalid":                  "Введите корректное значение",
	"cart.added":                     "%s добавлен в корзину",
	"cart.stock_available":           "В наличии: %d. Нельзя добавить %d шт.",
	"cart.stock_max_available":       "Больше добавить нельзя. Максимум в наличии: %d",
	"cart.removed":                   "%s удалён из корзины",
	"cart.item_removed":              "Товар удалён из корзины",
	"cart.updated":                   "Корзина обновлена",
	"cart.cleared":                   "Корзина очищена",
	"cart.saved":                     "Корзина сохранена, товаров: %d",
	"cart.empty":                     "Корзина пуста",
	"cart.transferred":               "Сохранённая корзина восстановлена",
	"checkout.login_required":        "Войдите, чтобы оформить заказ",
	"order.created":                  "Заказ №%s успешно создан",
	"auth.registered":                "Регистрация прошла успешно",
	"auth.logged_in":                 "С возвращением, %s",
	"auth.logged_out":                "Вы вышли из системы",
	"auth.password_changed":          "Пароль изменён, войдите снова",
	"auth.profile_updated":           "Профиль обновлён",
	"payment.debit":                  "Дебетовая карта",
	"payment.credit":                 "Кредитная карта",
	"payment.cash":                   "Наличными при получении",
	"payment.paypal":                 "PayPal",
	"payment.wallet":                 "Кошелёк",
	"email.order_placed.subject":     "Hop & Barley: заказ %s принят",
	"email.order_placed.greeting":    "Здравствуйте, %s!",
	"email.order_placed.intro":       "Спасибо за заказ. Мы получили его и скоро свяжемся с вами.",
	"email.order_placed.total":       "Итого: %s",
	"email.order_placed.line":        "%s x %d = %s",
	"email.order_placed.footer":      "Hop & Barley, всё для домашнего пивоварения",
}
