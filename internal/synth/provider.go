package synth

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/mrollo/retailgen/internal/models"
)

// TextProvider supplies realistic locale-flavored text. Implementations
// are free to fail only where the interface says so; everything else must
// return a usable value.
type TextProvider interface {
	FirstName(locale string) string
	LastName(locale string) string
	PhoneNumber(locale string) string
	CallingCode(locale string) (string, error)
	RawEmail(locale string) string
	DateOfBirth(locale string, minAge, maxAge int) time.Time
}

// localeNames carries a small pool of native given and family names for
// locales where anglophone fake data would look obviously wrong.
type localeNames struct {
	first []string
	last  []string
}

var nativeNames = map[string]localeNames{
	"zh_CN": {
		first: []string{"Wei", "Fang", "Jing", "Lei", "Min", "Hui", "Xiu", "Yan"},
		last:  []string{"Wang", "Li", "Zhang", "Liu", "Chen", "Yang", "Huang", "Zhao"},
	},
	"ja_JP": {
		first: []string{"Haruto", "Yui", "Sota", "Aoi", "Ren", "Hina", "Yuto", "Sakura"},
		last:  []string{"Sato", "Suzuki", "Takahashi", "Tanaka", "Watanabe", "Ito", "Yamamoto", "Nakamura"},
	},
	"ru_RU": {
		first: []string{"Ivan", "Olga", "Dmitri", "Anna", "Sergei", "Elena", "Mikhail", "Natasha"},
		last:  []string{"Ivanov", "Smirnov", "Kuznetsov", "Popov", "Sokolov", "Lebedev", "Kozlov", "Novikov"},
	},
	"de_DE": {
		first: []string{"Lukas", "Anna", "Finn", "Lea", "Jonas", "Emma", "Max", "Mia"},
		last:  []string{"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker"},
	},
	"fr_FR": {
		first: []string{"Lucas", "Emma", "Hugo", "Léa", "Louis", "Chloé", "Jules", "Manon"},
		last:  []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand"},
	},
	"it_IT": {
		first: []string{"Francesco", "Giulia", "Alessandro", "Sofia", "Lorenzo", "Martina", "Matteo", "Chiara"},
		last:  []string{"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo", "Ricci"},
	},
	"es_ES": {
		first: []string{"Hugo", "Lucía", "Daniel", "María", "Pablo", "Paula", "Alejandro", "Sara"},
		last:  []string{"García", "Rodríguez", "González", "Fernández", "López", "Martínez", "Sánchez", "Pérez"},
	},
	"es_MX": {
		first: []string{"Santiago", "Sofía", "Mateo", "Valentina", "Diego", "Camila", "Emiliano", "Regina"},
		last:  []string{"Hernández", "García", "Martínez", "López", "González", "Rodríguez", "Pérez", "Sánchez"},
	},
	"pt_BR": {
		first: []string{"Miguel", "Alice", "Arthur", "Laura", "Heitor", "Manuela", "Bernardo", "Helena"},
		last:  []string{"Silva", "Santos", "Oliveira", "Souza", "Lima", "Pereira", "Ferreira", "Costa"},
	},
	"ko_KR": {
		first: []string{"Minjun", "Seoyeon", "Jiho", "Jiwoo", "Hajun", "Haeun", "Doyun", "Yuna"},
		last:  []string{"Kim", "Lee", "Park", "Choi", "Jung", "Kang", "Cho", "Yoon"},
	},
	"ar_SA": {
		first: []string{"Mohammed", "Fatima", "Ahmed", "Aisha", "Abdullah", "Noura", "Khalid", "Sara"},
		last:  []string{"Al-Saud", "Al-Qahtani", "Al-Ghamdi", "Al-Harbi", "Al-Otaibi", "Al-Shehri", "Al-Zahrani", "Al-Dossari"},
	},
	"id_ID": {
		first: []string{"Budi", "Siti", "Agus", "Dewi", "Andi", "Sri", "Joko", "Ratna"},
		last:  []string{"Santoso", "Wijaya", "Saputra", "Hidayat", "Nugroho", "Kusuma", "Pratama", "Utami"},
	},
}

// Country calling codes by locale.
var callingCodes = map[string]string{
	"en_US": "+1", "en_CA": "+1", "en_GB": "+44", "en_IN": "+91",
	"en_AU": "+61", "zh_CN": "+86", "ja_JP": "+81", "de_DE": "+49",
	"fr_FR": "+33", "it_IT": "+39", "es_ES": "+34", "es_MX": "+52",
	"pt_BR": "+55", "ru_RU": "+7", "ko_KR": "+82", "ar_SA": "+966",
	"id_ID": "+62",
}

// fakeProvider backs TextProvider with gofakeit, layering native name
// pools on top for the locales that have one.
type fakeProvider struct {
	faker *gofakeit.Faker
}

// NewTextProvider creates a seeded text provider. The same seed yields the
// same draw sequence.
func NewTextProvider(seed uint64) TextProvider {
	return &fakeProvider{faker: gofakeit.New(seed)}
}

func (p *fakeProvider) FirstName(locale string) string {
	if names, ok := nativeNames[locale]; ok {
		return names.first[p.faker.Number(0, len(names.first)-1)]
	}
	return p.faker.FirstName()
}

func (p *fakeProvider) LastName(locale string) string {
	if names, ok := nativeNames[locale]; ok {
		return names.last[p.faker.Number(0, len(names.last)-1)]
	}
	return p.faker.LastName()
}

func (p *fakeProvider) PhoneNumber(locale string) string {
	return p.faker.PhoneFormatted()
}

func (p *fakeProvider) CallingCode(locale string) (string, error) {
	code, ok := callingCodes[locale]
	if !ok {
		return "", models.ErrProviderFailure(
			fmt.Sprintf("no calling code for locale %s", locale), nil)
	}
	return code, nil
}

func (p *fakeProvider) RawEmail(locale string) string {
	return p.faker.Email()
}

func (p *fakeProvider) DateOfBirth(locale string, minAge, maxAge int) time.Time {
	now := time.Now()
	return p.faker.DateRange(now.AddDate(-maxAge, 0, 0), now.AddDate(-minAge, 0, 0))
}
