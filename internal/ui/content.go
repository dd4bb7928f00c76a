package ui

// Static site copy. Markdown, rendered through internal/markdown.

const homeIntro = `# OndaCast

**Historias que suenan bien.**

Un pódcast sobre creatividad, tecnología y las personas que construyen
cosas. Nuevos episodios cada dos semanas.`

const aboutContent = `# Acerca de OndaCast

OndaCast nació en 2025 con una idea sencilla: conversaciones largas y sin
prisa con gente que hace cosas interesantes.

## Qué encontrarás

- Entrevistas en profundidad con creadores y tecnólogos
- Episodios temáticos sobre *creatividad* y *productividad*
- Notas del episodio con enlaces y fuentes citadas

## El equipo

El programa lo producen **J. M. Rivas** y un equipo pequeño de edición.
Grabamos desde un estudio casero, con más entusiasmo que presupuesto.

## Dónde escucharnos

Estamos en todas las plataformas habituales. Si prefieres el feed
directo, el RSS está en ` + "`ondacast.fm/feed.xml`" + `.

Si algo de lo que hacemos te sirve, cuéntaselo a alguien. Esa es la
mejor forma de apoyar el programa.`

const contactIntro = `# Contacto

¿Tienes una pregunta, una propuesta de invitado o simplemente quieres
saludar? Escríbenos. Leemos **todo** lo que llega.`

const contactOutro = `También puedes encontrarnos en ` + "`hola@ondacast.fm`" + `.`
