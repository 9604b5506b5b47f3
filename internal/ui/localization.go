package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyScan               = "scan"
	KeyFill               = "fill"
	KeyStop               = "stop"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyTemplateRoot       = "template_root"
	KeyEnterRoot          = "enter_root"
	KeyEnterURL           = "enter_url"
	KeyMaxParallel        = "max_parallel"
	KeyMaxFileSize        = "max_file_size"
	KeyUserAgent          = "user_agent"
	KeyFollowMarkup       = "follow_markup"
	KeyOverwriteStubs     = "overwrite_stubs"
	KeyOpenFolderDone     = "open_folder_done"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyPleaseChooseRoot   = "please_choose_root"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyInvalidURL         = "invalid_url"
	KeyScanning           = "scanning"
	KeyScanFailed         = "scan_failed"
	KeyNothingToFetch     = "nothing_to_fetch"
	KeyFilesToFetch       = "files_to_fetch"
	KeyFillStarted        = "fill_started"
	KeyFillCompleted      = "fill_completed"
	KeyAlreadyRunning     = "already_running"
	KeyErrorOpeningFolder = "error_opening_folder"
	KeyReady              = "ready"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Template Filler",
		KeyScan:               "Scan",
		KeyFill:               "Fill",
		KeyStop:               "Stop",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyTemplateRoot:       "Template Folder",
		KeyEnterRoot:          "Path to the local template folder",
		KeyEnterURL:           "Demo site URL (https://example.com/template)",
		KeyMaxParallel:        "Max Parallel Downloads",
		KeyMaxFileSize:        "Max File Size (MB)",
		KeyUserAgent:          "User-Agent",
		KeyFollowMarkup:       "Find missing files referenced in HTML/CSS",
		KeyOverwriteStubs:     "Replace placeholder images",
		KeyOpenFolderDone:     "Open folder when finished",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyPleaseChooseRoot:   "Please choose a template folder",
		KeyPleaseEnterURL:     "Please enter the demo site URL",
		KeyInvalidURL:         "Invalid URL",
		KeyScanning:           "Scanning...",
		KeyScanFailed:         "Scan failed",
		KeyNothingToFetch:     "All images are in place, nothing to fetch",
		KeyFilesToFetch:       "files to fetch",
		KeyFillStarted:        "Download started",
		KeyFillCompleted:      "Download completed",
		KeyAlreadyRunning:     "A download is already running",
		KeyErrorOpeningFolder: "Error opening folder",
		KeyReady:              "Ready",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Заполнитель шаблонов",
		KeyScan:               "Сканировать",
		KeyFill:               "Заполнить",
		KeyStop:               "Стоп",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyTemplateRoot:       "Папка шаблона",
		KeyEnterRoot:          "Путь к локальной папке шаблона",
		KeyEnterURL:           "URL демо-сайта (https://example.com/template)",
		KeyMaxParallel:        "Макс. параллельных загрузок",
		KeyMaxFileSize:        "Макс. размер файла (МБ)",
		KeyUserAgent:          "User-Agent",
		KeyFollowMarkup:       "Искать отсутствующие файлы в HTML/CSS",
		KeyOverwriteStubs:     "Заменять изображения-заглушки",
		KeyOpenFolderDone:     "Открыть папку по завершении",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyPleaseChooseRoot:   "Пожалуйста, выберите папку шаблона",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL демо-сайта",
		KeyInvalidURL:         "Неверный URL",
		KeyScanning:           "Сканирование...",
		KeyScanFailed:         "Ошибка сканирования",
		KeyNothingToFetch:     "Все изображения на месте, загружать нечего",
		KeyFilesToFetch:       "файлов к загрузке",
		KeyFillStarted:        "Загрузка начата",
		KeyFillCompleted:      "Загрузка завершена",
		KeyAlreadyRunning:     "Загрузка уже выполняется",
		KeyErrorOpeningFolder: "Ошибка открытия папки",
		KeyReady:              "Готово",
	}
}
